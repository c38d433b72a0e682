/*
Package filestream provides a stream over an owned native file handle.

Unlike fdstream, which borrows a raw descriptor, a filestream Stream
takes ownership: Close releases the handle, exactly once, regardless of
how many times it is called or on which error path. Constructing with a
nil handle is a valid zero state whose operations report ErrNoHandle
and whose Close is a no-op.

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	s := filestream.NewFile(f)
	defer s.Close()

NewReadWriter accepts any io.ReadWriteCloser, so sockets and other
handle-like resources can cross into the stream world the same way.
This is the inbound half of the bridge; pkg/bridge provides the
outbound half (stream to file handle).
*/
package filestream
