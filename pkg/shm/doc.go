// Package shm provides named, OS-backed shared memory segments that let
// processes on one host exchange a fixed-size byte buffer without copying
// through the kernel.
//
// A segment is created exclusively by one process and opened by others under
// the same name and capacity:
//
//	seg, err := shm.Create("/telemetry", 4096)
//	if err != nil {
//		return err
//	}
//	defer seg.Close()
//	_ = seg.WriteText("hello")
//
//	peer, err := shm.Open("/telemetry", 4096)
//	// peer.ReadText() == "hello"
//
// The payload length is implicit. Write zero-fills everything after the
// payload and Read drops trailing zero bytes, so a payload that legitimately
// ends in zeros cannot be told apart from a shorter one.
//
// Backends are selected at build time. Unix builds use a descriptor backend
// where the creator's Close unlinks the name (ModelUnlink); Windows uses
// pagefile-backed file mappings that vanish with their last handle
// (ModelRefcount). See LifetimeModel.
//
// On linux named objects are files in /dev/shm. Other unix systems have no
// such filesystem, so objects default to regular files in os.TempDir(),
// which is usually disk-backed. Set Config.Dir to a memory-backed mount
// there.
//
// Segments carry no synchronization. Concurrent writers, in one process or
// many, must coordinate outside this package.
package shm
