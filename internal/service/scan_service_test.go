package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type scanStorageStub struct {
	uploads int
	fail    bool
}

func (s *scanStorageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	s.uploads++
	if s.fail {
		return "", io.ErrUnexpectedEOF
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

func buildScanFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestScanReturnsDemoRows(t *testing.T) {
	storage := &scanStorageStub{}
	svc := NewScanService(storage, 5, zerolog.Nop())

	file := buildScanFile(t, "marksheet.png", pngHeader)
	result, err := svc.Scan(context.Background(), 1, file)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/marksheet.png", result.FileURL)
	require.Equal(t, 1, storage.uploads)

	require.Len(t, result.Subjects, 4)
	require.Equal(t, "Mathematics", result.Subjects[0].Name)
	require.Equal(t, 92, result.Subjects[0].Marks)
	require.Equal(t, "English", result.Subjects[3].Name)
	require.Equal(t, 78, result.Subjects[3].Marks)
}

func TestScanRejectsOversizedFile(t *testing.T) {
	svc := NewScanService(&scanStorageStub{}, 1, zerolog.Nop())

	file := buildScanFile(t, "big.png", bytes.Repeat([]byte("a"), 2*1024*1024))
	_, err := svc.Scan(context.Background(), 1, file)
	require.ErrorIs(t, err, ErrScanTooLarge)
}

func TestScanRejectsUnsupportedType(t *testing.T) {
	svc := NewScanService(&scanStorageStub{}, 5, zerolog.Nop())

	file := buildScanFile(t, "notes.txt", []byte("plain text, not a marksheet"))
	_, err := svc.Scan(context.Background(), 1, file)
	require.ErrorIs(t, err, ErrScanTypeNotAllowed)
}

func TestScanMissingFile(t *testing.T) {
	svc := NewScanService(&scanStorageStub{}, 5, zerolog.Nop())

	_, err := svc.Scan(context.Background(), 1, nil)
	require.ErrorIs(t, err, ErrScanFileRequired)
}

func TestScanContinuesWhenStorageFails(t *testing.T) {
	storage := &scanStorageStub{fail: true}
	svc := NewScanService(storage, 5, zerolog.Nop())

	file := buildScanFile(t, "marksheet.png", pngHeader)
	result, err := svc.Scan(context.Background(), 1, file)
	require.NoError(t, err)
	require.Empty(t, result.FileURL)
	require.Len(t, result.Subjects, 4)
}

func TestScanWorksWithoutStorage(t *testing.T) {
	svc := NewScanService(nil, 5, zerolog.Nop())

	file := buildScanFile(t, "marksheet.png", pngHeader)
	result, err := svc.Scan(context.Background(), 1, file)
	require.NoError(t, err)
	require.Empty(t, result.FileURL)
	require.Len(t, result.Subjects, 4)
}
