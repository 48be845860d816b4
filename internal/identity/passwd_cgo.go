//go:build unix && cgo

package identity

/*
#include <errno.h>
#include <pwd.h>
#include <stdlib.h>
#include <string.h>
#include <sys/types.h>

static int lyrebird_getpwuid_r(uid_t uid, char *buf, size_t buflen, int *found, char **name) {
	struct passwd pwd;
	struct passwd *result = NULL;
	int rc;

	memset(&pwd, 0, sizeof(pwd));
	rc = getpwuid_r(uid, &pwd, buf, buflen, &result);
	*found = result != NULL;
	*name = result != NULL ? pwd.pw_name : NULL;
	return rc;
}
*/
import "C"

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// getpwuid calls getpwuid_r(3) with a C-allocated scratch buffer of size
// bytes. The name is copied out before the buffer is freed.
func getpwuid(uid uint32, size int) Lookup {
	buf := (*C.char)(C.malloc(C.size_t(size)))
	if buf == nil {
		return Lookup{Status: Failed, Code: int(unix.ENOMEM)}
	}
	defer C.free(unsafe.Pointer(buf))

	var found C.int
	var name *C.char
	rc := C.lyrebird_getpwuid_r(C.uid_t(uid), buf, C.size_t(size), &found, &name)

	if found != 0 {
		if name == nil {
			return Lookup{Status: Found, Code: int(rc)}
		}
		n := C.strlen(name)
		return Lookup{
			Status: Found,
			Name:   C.GoBytes(unsafe.Pointer(name), C.int(n)),
			Code:   int(rc),
		}
	}

	errno := syscall.Errno(rc)
	return Lookup{Status: classify(errno), Code: int(rc)}
}
