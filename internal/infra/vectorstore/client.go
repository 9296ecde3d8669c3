// Package vectorstore implements the external search index services on top of
// the OpenAI Files and Vector Stores HTTP APIs.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"directorio/config"
	"directorio/internal/domain/entity"
	domainerrors "directorio/internal/domain/errors"
	"directorio/internal/domain/service"
	"directorio/internal/errors"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	// Terminal indexing statuses reported by the vector store.
	statusCompleted = "completed"

	filePurpose = "assistants"

	chatKitBetaHeader = "chatkit_beta=v1"
)

// Client talks to the remote vector store. It implements both the
// ProfileIndexer and ChatSessionService domain interfaces.
type Client struct {
	httpClient   *http.Client
	logger       *slog.Logger
	baseURL      string
	apiKey       string
	storeID      string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient is the constructor for Client.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	vsCfg := cfg.VectorStore
	if vsCfg == nil {
		return nil, errors.New("vector store config must be provided")
	}
	if vsCfg.APIKey == "" {
		return nil, errors.New("vector store api key must be provided")
	}
	if vsCfg.StoreID == "" {
		return nil, errors.New("vector store id must be provided")
	}

	baseURL := vsCfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pollInterval := vsCfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	pollTimeout := vsCfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 120 * time.Second
	}

	return &Client{
		httpClient:   &http.Client{},
		logger:       logger,
		baseURL:      baseURL,
		apiKey:       vsCfg.APIKey,
		storeID:      vsCfg.StoreID,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}, nil
}

// NewProfileIndexer exposes the client as the ProfileIndexer domain service.
func NewProfileIndexer(client *Client) service.ProfileIndexer {
	return client
}

// NewChatSessionService exposes the client as the ChatSessionService domain service.
func NewChatSessionService(client *Client) service.ChatSessionService {
	return client
}

// storedFile is a single entry of a vector store file listing.
type storedFile struct {
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	LastError  *storedFileError  `json:"last_error"`
	Attributes map[string]string `json:"attributes"`
}

type storedFileError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type fileListResponse struct {
	Data []storedFile `json:"data"`
}

type fileInfoResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

type attachRequest struct {
	FileID string `json:"file_id"`
}

type chatSessionRequest struct {
	Workflow struct {
		ID string `json:"id"`
	} `json:"workflow"`
	User string `json:"user"`
}

type chatSessionResponse struct {
	ClientSecret string `json:"client_secret"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// profileFilename builds the canonical index filename for a profile.
func profileFilename(profileID uuid.UUID) string {
	return fmt.Sprintf("prof_%s.json", profileID)
}

// SyncProfile replaces the indexed document for a profile. The previous
// version, if any, is removed first; the new document is uploaded, attached to
// the store, and polled until the index reports a terminal status.
func (c *Client) SyncProfile(ctx context.Context, profileID uuid.UUID, doc *entity.ProfileDocument) (string, error) {
	// Stale versions are removed best-effort: a cleanup failure must not
	// block publishing the fresh document.
	if _, err := c.removeMatching(ctx, profileID); err != nil {
		c.logger.WarnContext(ctx, "stale index document cleanup failed",
			slog.String("profileId", profileID.String()),
			slog.String("error", err.Error()),
		)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "marshal profile document")
	}

	fileID, err := c.uploadFile(ctx, profileFilename(profileID), payload)
	if err != nil {
		return "", err
	}

	attachedID, err := c.attachFile(ctx, fileID)
	if err != nil {
		return "", err
	}

	if err := c.waitForIndexing(ctx, attachedID); err != nil {
		return "", err
	}

	return fileID, nil
}

// RemoveProfile deletes the indexed document for a profile. It reports whether
// at least one matching document was removed.
func (c *Client) RemoveProfile(ctx context.Context, profileID uuid.UUID) (bool, error) {
	return c.removeMatching(ctx, profileID)
}

// CreateSession mints a chat session bound to the given workflow and end user.
func (c *Client) CreateSession(ctx context.Context, workflowID, userID string) (string, error) {
	var reqBody chatSessionRequest
	reqBody.Workflow.ID = workflowID
	reqBody.User = userID

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "marshal chat session request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chatkit/sessions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OpenAI-Beta", chatKitBetaHeader)

	var session chatSessionResponse
	if err := c.do(req, &session); err != nil {
		return "", err
	}

	return session.ClientSecret, nil
}

// removeMatching scans the store for files belonging to a profile and deletes
// them. Matching prefers the canonical filename; file attributes are the
// fallback for documents indexed without one.
func (c *Client) removeMatching(ctx context.Context, profileID uuid.UUID) (bool, error) {
	var listing fileListResponse
	listReq, err := c.newRequest(ctx, http.MethodGet, "/vector_stores/"+c.storeID+"/files", nil)
	if err != nil {
		return false, err
	}
	if err := c.do(listReq, &listing); err != nil {
		return false, errors.Wrap(err, "list vector store files")
	}

	wantName := profileFilename(profileID)
	removed := false
	for _, f := range listing.Data {
		if !c.matchesProfile(ctx, f, wantName, profileID) {
			continue
		}

		if err := c.detachFile(ctx, f.ID); err != nil {
			return removed, errors.Wrapf(err, "detach file %s", f.ID)
		}

		// Deleting the underlying file is optional cleanup.
		if err := c.deleteFile(ctx, f.ID); err != nil {
			c.logger.WarnContext(ctx, "underlying file deletion failed",
				slog.String("fileId", f.ID),
				slog.String("error", err.Error()),
			)
		}

		removed = true
	}

	return removed, nil
}

// matchesProfile reports whether a stored file belongs to the given profile.
func (c *Client) matchesProfile(ctx context.Context, f storedFile, wantName string, profileID uuid.UUID) bool {
	if name, err := c.fileName(ctx, f.ID); err == nil && name == wantName {
		return true
	}

	return f.Attributes["prof_id"] == profileID.String()
}

// fileName retrieves the original filename of an uploaded file.
func (c *Client) fileName(ctx context.Context, fileID string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files/"+fileID, nil)
	if err != nil {
		return "", err
	}

	var info fileInfoResponse
	if err := c.do(req, &info); err != nil {
		return "", err
	}

	return info.Filename, nil
}

// uploadFile uploads the document as a standalone file with the assistants purpose.
func (c *Client) uploadFile(ctx context.Context, filename string, payload []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("purpose", filePurpose); err != nil {
		return "", errors.Wrap(err, "write purpose field")
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, "create form file")
	}
	if _, err := part.Write(payload); err != nil {
		return "", errors.Wrap(err, "write file payload")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "close multipart writer")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var uploaded uploadResponse
	if err := c.do(req, &uploaded); err != nil {
		return "", errors.Wrap(err, "upload file")
	}

	return uploaded.ID, nil
}

// attachFile attaches an uploaded file to the vector store and returns the
// vector store file id used for status polling.
func (c *Client) attachFile(ctx context.Context, fileID string) (string, error) {
	body, err := json.Marshal(attachRequest{FileID: fileID})
	if err != nil {
		return "", errors.Wrap(err, "marshal attach request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/vector_stores/"+c.storeID+"/files", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var attached storedFile
	if err := c.do(req, &attached); err != nil {
		return "", errors.Wrap(err, "attach file to vector store")
	}

	return attached.ID, nil
}

// detachFile removes a file from the vector store.
func (c *Client) detachFile(ctx context.Context, fileID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/vector_stores/"+c.storeID+"/files/"+fileID, nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// deleteFile deletes the underlying uploaded file.
func (c *Client) deleteFile(ctx context.Context, fileID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/files/"+fileID, nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

// waitForIndexing polls the vector store until the file reaches a terminal
// status. Anything other than completed within the deadline is a sync failure.
func (c *Client) waitForIndexing(ctx context.Context, vectorStoreFileID string) error {
	deadline := time.Now().Add(c.pollTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		req, err := c.newRequest(ctx, http.MethodGet, "/vector_stores/"+c.storeID+"/files/"+vectorStoreFileID, nil)
		if err != nil {
			return err
		}

		var f storedFile
		if err := c.do(req, &f); err != nil {
			return errors.Wrap(err, "retrieve indexing status")
		}

		switch f.Status {
		case statusCompleted:
			return nil
		case "failed", "error", "cancelled":
			details := ""
			if f.LastError != nil {
				details = f.LastError.Message
			}

			return domainerrors.NewIndexSyncError(f.Status, details)
		}

		if time.Now().After(deadline) {
			return domainerrors.NewIndexSyncError("timeout", "indexing did not complete within the deadline")
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "indexing wait cancelled")
		case <-ticker.C:
		}
	}
}

// newRequest builds an authenticated request against the API base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s request", method, path)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return req, nil
}

// do executes a request and decodes the JSON response into out when non-nil.
// Non-2xx responses are surfaced with the API's error message when present.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "vector store request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read vector store response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return errors.Errorf("vector store api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}

		return errors.Errorf("vector store api error (%d)", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode vector store response")
	}

	return nil
}
