//go:build !unix

package ping

import "syscall"

var privilegeErrnos = []error{syscall.EPERM, syscall.EACCES}
