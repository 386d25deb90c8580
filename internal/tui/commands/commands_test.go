package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/timetable/internal/lecture"
)

type fakeLoader struct {
	lectures []lecture.Lecture
	err      error
}

func (f fakeLoader) FetchAll(context.Context) ([]lecture.Lecture, error) {
	return f.lectures, f.err
}

func TestLoadCatalogReturnsLoadedMsg(t *testing.T) {
	cmd := LoadCatalog(fakeLoader{lectures: []lecture.Lecture{{ID: "CS101"}}})
	msg := cmd()

	loaded, ok := msg.(CatalogLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want CatalogLoadedMsg", msg)
	}
	if len(loaded.Lectures) != 1 || loaded.Lectures[0].ID != "CS101" {
		t.Fatalf("lectures = %+v", loaded.Lectures)
	}
}

func TestLoadCatalogReturnsErrMsg(t *testing.T) {
	boom := errors.New("boom")
	msg := LoadCatalog(fakeLoader{err: boom})()

	errMsg, ok := msg.(CatalogErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want CatalogErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Fatalf("err = %v, want wrapped boom", errMsg.Err)
	}
}

func TestStatus(t *testing.T) {
	msg := Status("added %d blocks", 2)()
	status, ok := msg.(StatusMsgCmd)
	if !ok {
		t.Fatalf("msg type = %T, want StatusMsgCmd", msg)
	}
	if status.Msg != "added 2 blocks" {
		t.Fatalf("Msg = %q", status.Msg)
	}
}

func TestCopy(t *testing.T) {
	var got string
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(s string) error {
		got = s
		return nil
	}

	msg := Copy("line one\nline two\n")()
	copied, ok := msg.(CopiedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want CopiedMsg", msg)
	}
	if copied.Lines != 2 {
		t.Errorf("Lines = %d, want 2", copied.Lines)
	}
	if got != "line one\nline two\n" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestCopyError(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(string) error { return errors.New("no clipboard") }

	if _, ok := Copy("x")().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg")
	}
}
