//go:build darwin && cgo && !disable_signposts

package signpost

/*
#cgo CFLAGS: -Wno-unguarded-availability -Wno-unguarded-availability-new
#include <os/log.h>
#include <os/signpost.h>
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

static uintptr_t sp_log_create(const char *subsystem, const char *category) {
	return (uintptr_t)os_log_create(subsystem, category);
}

static bool sp_enabled(uintptr_t log) {
	return os_signpost_enabled((os_log_t)log);
}

static void sp_emit(uintptr_t log, uint8_t kind, uint64_t id, const char *name) {
	uint8_t buf[64] = {0};
	_os_signpost_emit_with_name_impl(&__dso_handle, (os_log_t)log,
		(os_signpost_type_t)kind, (os_signpost_id_t)id, name, NULL,
		buf, (uint32_t)sizeof(buf));
}
*/
import "C"

import "unsafe"

var platformBackend Backend = newOSSignpost()

// osSignpost emits into os_signpost. Identity strings are interned for the
// life of the process. Names are interned up to maxInternedNames; names built
// at runtime past that bound are copied per call and freed after emission.
type osSignpost struct {
	idents *internTable[*C.char]
	names  *internTable[*C.char]
}

func newOSSignpost() *osSignpost {
	alloc := func(s string) *C.char { return C.CString(s) }
	free := func(p *C.char) { C.free(unsafe.Pointer(p)) }
	return &osSignpost{
		idents: newInternTable(0, alloc, free),
		names:  newInternTable(maxInternedNames, alloc, free),
	}
}

func (o *osSignpost) CreateHandle(subsystem, category string) Handle {
	sub, subOwned := o.idents.get(subsystem)
	defer o.idents.release(sub, subOwned)
	cat, catOwned := o.idents.get(category)
	defer o.idents.release(cat, catOwned)
	return Handle(C.sp_log_create(sub, cat))
}

func (o *osSignpost) Enabled(h Handle) bool {
	if h == NoHandle {
		return false
	}
	return bool(C.sp_enabled(C.uintptr_t(h)))
}

func (o *osSignpost) Emit(h Handle, kind Kind, id uint64, name string) {
	cname, owned := o.names.get(name)
	defer o.names.release(cname, owned)
	C.sp_emit(C.uintptr_t(h), C.uint8_t(kind), C.uint64_t(id), cname)
}
