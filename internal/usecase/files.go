package usecase

import (
	"context"
	"errors"
	"strings"

	"chatdesk/internal/domain"
	"chatdesk/internal/router"
)

type ContainerSource interface {
	Containers(ctx context.Context) (router.ContainerMap, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, data []byte, originalName, contentType, container string) (domain.UploadedObject, error)
	List(ctx context.Context, maxResults int, container string) ([]domain.ObjectInfo, error)
}

// FileService stores documents in the container mapped from their domain.
type FileService struct {
	store      ObjectStore
	containers ContainerSource
}

type UploadInput struct {
	Data        []byte
	Filename    string
	ContentType string
	Domain      string
}

type ListInput struct {
	MaxResults int
	Domain     string
}

func NewFileService(store ObjectStore, containers ContainerSource) (*FileService, error) {
	if store == nil {
		return nil, errors.New("usecase: object store must not be nil")
	}
	if containers == nil {
		return nil, errors.New("usecase: container source must not be nil")
	}
	return &FileService{store: store, containers: containers}, nil
}

func (s *FileService) Upload(ctx context.Context, in UploadInput) (domain.UploadedObject, error) {
	if strings.TrimSpace(in.Filename) == "" {
		return domain.UploadedObject{}, newError(ErrorInvalidInput, "missing_filename", nil)
	}
	container, err := s.containerFor(ctx, in.Domain)
	if err != nil {
		return domain.UploadedObject{}, err
	}
	obj, err := s.store.Upload(ctx, in.Data, in.Filename, in.ContentType, container)
	if err != nil {
		return domain.UploadedObject{}, newError(ErrorStorage, "upload_error", err)
	}
	return obj, nil
}

func (s *FileService) List(ctx context.Context, in ListInput) ([]domain.ObjectInfo, error) {
	if in.MaxResults < 0 {
		return nil, newError(ErrorInvalidInput, "negative_max_results", nil)
	}
	container, err := s.containerFor(ctx, in.Domain)
	if err != nil {
		return nil, err
	}
	files, err := s.store.List(ctx, in.MaxResults, container)
	if err != nil {
		return nil, newError(ErrorStorage, "list_error", err)
	}
	return files, nil
}

func (s *FileService) containerFor(ctx context.Context, domainName string) (string, error) {
	m, err := s.containers.Containers(ctx)
	if err != nil {
		return "", newError(ErrorInternal, "settings_error", err)
	}
	return m.ContainerFor(domainName), nil
}
