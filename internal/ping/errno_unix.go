//go:build unix

package ping

import "golang.org/x/sys/unix"

var privilegeErrnos = []error{unix.EPERM, unix.EACCES}
