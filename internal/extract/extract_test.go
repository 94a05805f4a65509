package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"jobportal/internal/shared/storage/object"
	"jobportal/internal/shared/storage/object/local"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Python, Docker</w:t></w:r></w:p>
<w:p><w:r><w:t>5 years experience</w:t></w:r></w:p>
</w:body>
</w:document>`

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildDocx(t *testing.T) []byte {
	return buildZip(t, map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
	})
}

func TestFromBytesDocx(t *testing.T) {
	data := buildDocx(t)
	for _, mime := range []string{mimeDOCX, "application/zip", "application/octet-stream", ""} {
		got, err := FromBytes(context.Background(), data, mime, "cv.docx")
		if err != nil {
			t.Fatalf("mime %q: %v", mime, err)
		}
		want := "Jane Doe\nSkills:\tPython, Docker\n5 years experience"
		if got != want {
			t.Fatalf("mime %q: got %q, want %q", mime, got, want)
		}
	}
}

func TestFromBytesDocxDetectedFromContent(t *testing.T) {
	got, err := FromBytes(context.Background(), buildDocx(t), "", "upload")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Python, Docker") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestFromBytesPlainText(t *testing.T) {
	got, err := FromBytes(context.Background(), []byte("Go developer\nKubernetes"), "text/plain; charset=utf-8", "cv.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Go developer\nKubernetes" {
		t.Fatalf("got %q", got)
	}
}

func TestFromBytesRejectsPlainZip(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})
	_, err := FromBytes(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestFromBytesErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := FromBytes(ctx, nil, mimePDF, "cv.pdf"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := FromBytes(ctx, []byte("%PDF-1.4 not really a pdf"), mimePDF, "cv.pdf"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, err := FromBytes(ctx, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, "image/png", "me.png"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := FromBytes(cancelled, []byte("text"), mimePlain, "a.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// buildPDF lays out numbered objects with a correct xref table so the reader
// gets past the trailer and only fails once it resolves an object body.
func buildPDF(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func corruptFontPDF() []byte {
	content := "BT /F1 12 Tf 72 720 Td (Jane Doe) Tj ET"
	return buildPDF([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont ) >>",
	})
}

func TestFromBytesCorruptPDFObjectIsMalformed(t *testing.T) {
	_, err := FromBytes(context.Background(), corruptFontPDF(), mimePDF, "cv.pdf")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestTextCorruptPDFObjectYieldsEmpty(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Text panicked: %v", r)
		}
	}()
	if got := Text(context.Background(), corruptFontPDF(), mimePDF, "cv.pdf"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestTextDegradesToEmpty(t *testing.T) {
	if got := Text(context.Background(), []byte("%PDF-garbage"), mimePDF, "broken.pdf"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if got := Text(context.Background(), []byte("plain résumé"), "", "cv.txt"); got != "plain résumé" {
		t.Fatalf("got %q", got)
	}
}

func TestFromObject(t *testing.T) {
	store := local.New(t.TempDir())
	ctx := context.Background()
	obj, err := store.Save(ctx, object.FolderApplications, "u1", "cv.docx", bytes.NewReader(buildDocx(t)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := FromObject(ctx, store, obj.Key, obj.MimeType)
	if err != nil {
		t.Fatalf("from object: %v", err)
	}
	if !strings.HasPrefix(got, "Jane Doe") {
		t.Fatalf("unexpected text %q", got)
	}

	if _, err := FromObject(ctx, store, "applications/missing.pdf", mimePDF); err == nil {
		t.Fatal("expected missing object to fail")
	}
}
