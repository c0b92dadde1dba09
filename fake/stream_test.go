package fake

import (
	"errors"
	"io"
	"testing"
)

func TestStreamChunks(t *testing.T) {
	s := NewStream("abc", "de")
	buf := make([]byte, 2)
	var got []string
	for {
		n, err := s.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, string(buf[:n]))
	}
	want := []string{"ab", "c", "de"}
	if len(got) != len(want) {
		t.Fatalf("reads = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("read %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStreamWritesAndErrors(t *testing.T) {
	s := NewStream()
	s.Write([]byte("he"))
	s.Write([]byte("llo"))
	if string(s.Sent()) != "hello" || len(s.GetSentData()) != 2 {
		t.Errorf("sent = %q", s.GetSentData())
	}

	boom := errors.New("boom")
	s.SetRecvError(boom)
	if _, err := s.Read(make([]byte, 1)); err != boom {
		t.Errorf("read err = %v", err)
	}
	s.SetSendError(boom)
	if _, err := s.Write([]byte("x")); err != boom {
		t.Errorf("write err = %v", err)
	}

	s.Close()
	if _, err := s.Read(make([]byte, 1)); err != ErrStreamClosed {
		t.Errorf("read after close = %v", err)
	}
}
