package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// BlobSink uploads reports to Azure Blob Storage
type BlobSink struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewBlobSink creates a sink for the given storage account and container
func NewBlobSink(accountName, accountKey, containerName string, logger *zap.Logger) (*BlobSink, error) {
	if accountName == "" || accountKey == "" || containerName == "" {
		return nil, fmt.Errorf("accountName, accountKey, and containerName are required")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	return newBlobSink(serviceURL, accountName, accountKey, containerName, logger)
}

func newBlobSink(serviceURL, accountName, accountKey, containerName string, logger *zap.Logger) (*BlobSink, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &BlobSink{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// Upload stores the PDF under reports/ and returns the blob name
func (s *BlobSink) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	s.logger.Info("uploading report to blob storage",
		zap.String("filename", filename),
		zap.Int("size_bytes", len(data)),
	)

	blobName := fmt.Sprintf("reports/%s", filename)
	blobClient := s.client.ServiceClient().NewContainerClient(s.containerName).NewBlockBlobClient(blobName)

	contentType := "application/pdf"
	_, err := blobClient.UploadBuffer(ctx, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
		Metadata: map[string]*string{
			"contenttype": &contentType,
		},
	})
	if err != nil {
		s.logger.Error("failed to upload report",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	s.logger.Info("report uploaded successfully", zap.String("blob_name", blobName))
	return blobName, nil
}

// Download fetches a report by blob name
func (s *BlobSink) Download(ctx context.Context, blobName string) ([]byte, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(s.containerName).NewBlockBlobClient(blobName)

	resp, err := blobClient.DownloadStream(ctx, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil, fmt.Errorf("%s: %w", blobName, ErrNotFound)
	}
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			s.logger.Error("blob storage rejected download",
				zap.String("blob_name", blobName),
				zap.Int("status", respErr.StatusCode),
			)
		}
		return nil, fmt.Errorf("failed to download report: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report data: %w", err)
	}
	return data, nil
}
