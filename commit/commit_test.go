package commit

import "testing"

func TestTakeBeforeCommitReturnsNilNotNew(t *testing.T) {
	var b Box
	snap, isNew := b.Take()
	if snap != nil || isNew {
		t.Fatalf("got %v %v", snap, isNew)
	}
}

func TestCommitThenTakeIsNew(t *testing.T) {
	var b Box
	b.Commit(&Snapshot{URL: "http://example.org/"})
	snap, isNew := b.Take()
	if !isNew || snap.URL != "http://example.org/" {
		t.Fatalf("got %v %v", snap, isNew)
	}
}

func TestSecondTakeIsNotNew(t *testing.T) {
	var b Box
	b.Commit(&Snapshot{})
	b.Take()
	_, isNew := b.Take()
	if isNew {
		t.Fatal("expected second Take to report no new snapshot")
	}
}

func TestCommitAgainMarksNewAgain(t *testing.T) {
	var b Box
	b.Commit(&Snapshot{})
	b.Take()
	b.Commit(&Snapshot{})
	_, isNew := b.Take()
	if !isNew {
		t.Fatal("expected re-commit to mark new again")
	}
}
