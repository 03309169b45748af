package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// ChaptersClient wraps the chapter endpoints nested under a book.
type ChaptersClient struct {
	c *Client
}

func NewChaptersClient(c *Client) *ChaptersClient {
	return &ChaptersClient{c: c}
}

func chapterPath(bookID string, rest ...string) string {
	p := "/Book/" + url.PathEscape(bookID) + "/chapters"
	for _, part := range rest {
		p += "/" + url.PathEscape(part)
	}
	return p
}

type chapterPayload struct {
	PageIndex int    `json:"pageIndex"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// ListByBook fetches every chapter of one book.
func (cc *ChaptersClient) ListByBook(ctx context.Context, bookID string) ([]domain.Chapter, error) {
	env, err := cc.c.do(ctx, request{
		method:   http.MethodGet,
		path:     chapterPath(bookID),
		resource: "chapters",
	}, "could not load the chapter list")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the chapter list")
	}
	docs, err := decodeList[chapterDoc](env.Value, "chapters")
	if err != nil {
		return nil, err
	}
	return chaptersToDomain(docs), nil
}

// Get fetches one chapter.
func (cc *ChaptersClient) Get(ctx context.Context, bookID, chapterID string) (*domain.Chapter, error) {
	env, err := cc.c.do(ctx, request{
		method:   http.MethodGet,
		path:     chapterPath(bookID, chapterID),
		resource: "chapters",
	}, "could not load the chapter")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the chapter")
	}
	return decodeChapter(env)
}

// Create adds a chapter to a book.
func (cc *ChaptersClient) Create(ctx context.Context, bookID string, input ports.ChapterInput) (*domain.Chapter, error) {
	body, err := json.Marshal(chapterPayload{PageIndex: input.PageIndex, Title: input.Title, Content: input.Content})
	if err != nil {
		return nil, err
	}

	env, err := cc.c.do(ctx, request{
		method:      http.MethodPost,
		path:        chapterPath(bookID),
		body:        bytes.NewReader(body),
		contentType: "application/json",
		resource:    "chapters",
	}, "could not create the chapter")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not create the chapter")
	}
	return decodeChapter(env)
}

// Update replaces a chapter's fields.
func (cc *ChaptersClient) Update(ctx context.Context, bookID, chapterID string, input ports.ChapterInput) (*domain.Chapter, error) {
	body, err := json.Marshal(chapterPayload{PageIndex: input.PageIndex, Title: input.Title, Content: input.Content})
	if err != nil {
		return nil, err
	}

	env, err := cc.c.do(ctx, request{
		method:      http.MethodPut,
		path:        chapterPath(bookID, chapterID),
		body:        bytes.NewReader(body),
		contentType: "application/json",
		resource:    "chapters",
	}, "could not update the chapter")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not update the chapter")
	}
	return decodeChapter(env)
}

// Delete removes a chapter.
func (cc *ChaptersClient) Delete(ctx context.Context, bookID, chapterID string) error {
	env, err := cc.c.do(ctx, request{
		method:   http.MethodDelete,
		path:     chapterPath(bookID, chapterID),
		resource: "chapters",
	}, "could not delete the chapter")
	if err != nil {
		return err
	}
	if !env.IsSuccess {
		return env.Failure("could not delete the chapter")
	}
	return nil
}

func decodeChapter(env *Envelope) (*domain.Chapter, error) {
	var doc chapterDoc
	if err := decodeValue(env.Value, &doc); err != nil {
		return nil, err
	}
	chapter := doc.toDomain()
	return &chapter, nil
}
