// Package github wraps the GitHub API for the two roles it plays here:
// content provider (gist reads) and registry document store (repo contents
// API with SHA-guarded writes).
package github

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	gogithub "github.com/google/go-github/v66/github"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/features/verify/models"
)

type Client struct {
	gh    *gogithub.Client
	owner string
	repo  string
}

// NewClient builds an authenticated client. owner/repo locate the repository
// holding the registry documents.
func NewClient(token, owner, repo string) *Client {
	httpClient := &http.Client{
		Timeout: 15 * time.Second,
	}
	return &Client{
		gh:    gogithub.NewClient(httpClient).WithAuthToken(token),
		owner: owner,
		repo:  repo,
	}
}

// NewClientWithGithub is used by tests to inject a client pointed at a stub
// server.
func NewClientWithGithub(gh *gogithub.Client, owner, repo string) *Client {
	return &Client{gh: gh, owner: owner, repo: repo}
}

// Gist fetches a gist and resolves its owner. Files become candidate posts in
// file-name order, so extraction stays reproducible across calls.
func (c *Client) Gist(ctx context.Context, id string) (*models.GistContent, error) {
	gist, resp, err := c.gh.Gists.Get(ctx, id)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.Newf(apperrors.ErrCodeSourceNotFound, "gist %s not found", id)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSourceNotFound, "fetching gist")
	}

	owner := gist.GetOwner()
	if owner.GetLogin() == "" {
		return nil, apperrors.Newf(apperrors.ErrCodeSourceNotFound, "gist %s has no resolvable owner", id)
	}

	names := make([]string, 0, len(gist.Files))
	for name := range gist.Files {
		names = append(names, string(name))
	}
	sort.Strings(names)

	posts := make([]models.Post, 0, len(names))
	for _, name := range names {
		file := gist.Files[gogithub.GistFilename(name)]
		posts = append(posts, models.Post{
			ID:           id,
			Text:         file.GetContent(),
			AuthorHandle: owner.GetLogin(),
		})
	}

	return &models.GistContent{
		ID:      id,
		Owner:   owner.GetLogin(),
		OwnerID: owner.GetID(),
		Posts:   posts,
	}, nil
}

// Read returns the decoded registry document and its blob SHA as version tag.
// A missing document reads as empty content with an empty tag; the first
// write bootstraps it.
func (c *Client) Read(ctx context.Context, path string) ([]byte, string, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	if file == nil {
		return nil, "", fmt.Errorf("%s is not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return []byte(content), file.GetSHA(), nil
}

// Write updates the registry document, passing expectedTag as the SHA
// precondition. GitHub rejects a stale SHA with 409, surfaced as a CONFLICT
// error so the record store can retry from a fresh read. An empty tag creates
// the document.
func (c *Client) Write(ctx context.Context, path string, content []byte, expectedTag string) error {
	opts := &gogithub.RepositoryContentFileOptions{
		Message: gogithub.String("Update " + path),
		Content: content,
	}

	var resp *gogithub.Response
	var err error
	if expectedTag == "" {
		_, resp, err = c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, path, opts)
	} else {
		opts.SHA = gogithub.String(expectedTag)
		_, resp, err = c.gh.Repositories.UpdateFile(ctx, c.owner, c.repo, path, opts)
	}
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity) {
			return apperrors.Wrapf(err, apperrors.ErrCodeConflict, "%s changed since read", path)
		}
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
