package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"jobportal/internal/shared/storage/object"
	"jobportal/internal/shared/util"
)

func TestSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Save(ctx, object.FolderResumes, "guest:abc", "my cv.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	wantPrefix := object.FolderResumes + "/" + util.OwnerKey("guest:abc") + "/"
	if !strings.HasPrefix(obj.Key, wantPrefix) || !strings.HasSuffix(obj.Key, "_my cv.pdf") {
		t.Fatalf("unexpected key %q", obj.Key)
	}
	if obj.Size != int64(len("%PDF-1.4 fake")) {
		t.Fatalf("size = %d", obj.Size)
	}
	if obj.MimeType != "application/pdf" {
		t.Fatalf("mime = %q", obj.MimeType)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("content = %q", data)
	}

	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := store.Open(ctx, obj.Key); err == nil {
		t.Fatal("expected open after delete to fail")
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Open(ctx, "../etc/passwd"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if err := store.Delete(ctx, "/abs/path"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := store.Save(ctx, object.FolderResumes, "u", "../x.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected sanitize error")
	}
}
