package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"chatdesk/internal/domain"
	"chatdesk/internal/router"
)

type fakeObjectStore struct {
	uploadErr error
	listErr   error

	container   string
	name        string
	contentType string
	data        []byte
	maxResults  int
	files       []domain.ObjectInfo
}

func (f *fakeObjectStore) Upload(_ context.Context, data []byte, originalName, contentType, container string) (domain.UploadedObject, error) {
	f.container, f.name, f.contentType, f.data = container, originalName, contentType, data
	if f.uploadErr != nil {
		return domain.UploadedObject{}, f.uploadErr
	}
	return domain.UploadedObject{BlobName: "20250101-120000-" + originalName, Size: int64(len(data))}, nil
}

func (f *fakeObjectStore) List(_ context.Context, maxResults int, container string) ([]domain.ObjectInfo, error) {
	f.container, f.maxResults = container, maxResults
	return f.files, f.listErr
}

type fakeContainers struct {
	m   router.ContainerMap
	err error
}

func (f *fakeContainers) Containers(_ context.Context) (router.ContainerMap, error) {
	return f.m, f.err
}

func newTestFiles(t *testing.T, store *fakeObjectStore, containers *fakeContainers) *FileService {
	t.Helper()
	svc, err := NewFileService(store, containers)
	require.NoError(t, err)
	return svc
}

func TestNewFileService_ValidatesDependencies(t *testing.T) {
	_, err := NewFileService(nil, &fakeContainers{})
	require.Error(t, err)
	_, err = NewFileService(&fakeObjectStore{}, nil)
	require.Error(t, err)
}

func TestFileUpload_RoutesByDomain(t *testing.T) {
	store := &fakeObjectStore{}
	svc := newTestFiles(t, store, &fakeContainers{m: router.DefaultContainers()})

	obj, err := svc.Upload(context.Background(), UploadInput{
		Data:        []byte("policy"),
		Filename:    "leave.pdf",
		ContentType: "application/pdf",
		Domain:      "HR",
	})
	require.NoError(t, err)
	require.Equal(t, "20250101-120000-leave.pdf", obj.BlobName)
	require.Equal(t, router.DefaultHRContainer, store.container)
	require.Equal(t, "application/pdf", store.contentType)
	require.Equal(t, []byte("policy"), store.data)

	_, err = svc.Upload(context.Background(), UploadInput{Filename: "x.txt", Domain: "auto"})
	require.NoError(t, err)
	require.Equal(t, router.DefaultContainer, store.container)

	_, err = svc.Upload(context.Background(), UploadInput{Filename: "x.txt", Domain: "finance"})
	require.NoError(t, err)
	require.Equal(t, router.DefaultContainer, store.container)
}

func TestFileUpload_UsesOverriddenContainers(t *testing.T) {
	m := router.DefaultContainers()
	m.Legal = "contracts"
	store := &fakeObjectStore{}
	svc := newTestFiles(t, store, &fakeContainers{m: m})

	_, err := svc.Upload(context.Background(), UploadInput{Filename: "nda.docx", Domain: "legal"})
	require.NoError(t, err)
	require.Equal(t, "contracts", store.container)
}

func TestFileUpload_Errors(t *testing.T) {
	svc := newTestFiles(t, &fakeObjectStore{}, &fakeContainers{m: router.DefaultContainers()})
	_, err := svc.Upload(context.Background(), UploadInput{Filename: " "})
	expectCode(t, err, ErrorInvalidInput, "missing_filename")

	svc = newTestFiles(t, &fakeObjectStore{uploadErr: errors.New("bucket gone")}, &fakeContainers{m: router.DefaultContainers()})
	_, err = svc.Upload(context.Background(), UploadInput{Filename: "a.txt"})
	ue := expectCode(t, err, ErrorStorage, "upload_error")
	require.Equal(t, "bucket gone", ue.Detail())

	svc = newTestFiles(t, &fakeObjectStore{}, &fakeContainers{err: errors.New("ssm down")})
	_, err = svc.Upload(context.Background(), UploadInput{Filename: "a.txt"})
	expectCode(t, err, ErrorInternal, "settings_error")
}

func TestFileList(t *testing.T) {
	files := []domain.ObjectInfo{{Name: "a"}, {Name: "b"}}
	store := &fakeObjectStore{files: files}
	svc := newTestFiles(t, store, &fakeContainers{m: router.DefaultContainers()})

	got, err := svc.List(context.Background(), ListInput{MaxResults: 100, Domain: "l1"})
	require.NoError(t, err)
	require.Equal(t, files, got)
	require.Equal(t, 100, store.maxResults)
	require.Equal(t, router.DefaultL1Container, store.container)
}

func TestFileList_Errors(t *testing.T) {
	svc := newTestFiles(t, &fakeObjectStore{}, &fakeContainers{m: router.DefaultContainers()})
	_, err := svc.List(context.Background(), ListInput{MaxResults: -1})
	expectCode(t, err, ErrorInvalidInput, "negative_max_results")

	svc = newTestFiles(t, &fakeObjectStore{listErr: errors.New("timeout")}, &fakeContainers{m: router.DefaultContainers()})
	_, err = svc.List(context.Background(), ListInput{})
	expectCode(t, err, ErrorStorage, "list_error")
}
