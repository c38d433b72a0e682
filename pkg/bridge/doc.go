/*
Package bridge exposes a stream as a standard file handle.

NewFile wraps an owned stream in a File implementing io.Reader,
io.Writer, io.Seeker and io.Closer, so consumers that only speak the
file-handle API can drive any stream-based producer:

	var buf []byte
	f := bridge.NewFile(memstream.New(&buf))
	defer f.Close()

	bw := bufio.NewWriter(f)
	bw.WriteString("routed through bufio")
	bw.Flush()

	f.Seek(0, io.SeekStart)
	line, _ := bufio.NewReader(f).ReadString('\n')

Together with filestream (which wraps a native handle as a stream) the
bridge is bidirectional: handle consumers reach stream producers, and
stream consumers reach handle producers.

Ownership transfers to the File: closing it drops the stream and
releases whatever the stream owns, exactly once. The buffered-file
machinery layered on top may call Read and Write with arbitrary sizes,
including zero; the thunks tolerate all of them. Non-EOF errors are
latched into a sticky indicator (Err/ClearErr), so handle-style error
checking keeps working after the fact.
*/
package bridge
