package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// BooksClient wraps the platform's book and category endpoints.
type BooksClient struct {
	c *Client
}

func NewBooksClient(c *Client) *BooksClient {
	return &BooksClient{c: c}
}

// List fetches the catalog, optionally narrowed by activity or category.
func (b *BooksClient) List(ctx context.Context, filter ports.ListBooksFilter) ([]domain.Book, error) {
	q := url.Values{}
	q.Set("onlyActive", strconv.FormatBool(filter.OnlyActive))
	if filter.CategoryID != "" {
		q.Set("categoryId", filter.CategoryID)
	}
	if filter.CategoryName != "" {
		q.Set("categoryName", filter.CategoryName)
	}

	env, err := b.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/Book",
		query:    q,
		resource: "books",
	}, "could not load the book list")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the book list")
	}
	docs, err := decodeList[bookDoc](env.Value, "books")
	if err != nil {
		return nil, err
	}
	return booksToDomain(docs), nil
}

// Get fetches one book.
func (b *BooksClient) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	env, err := b.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/Book/" + url.PathEscape(bookID),
		resource: "books",
	}, "could not load the book")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the book")
	}
	var doc bookDoc
	if err := decodeValue(env.Value, &doc); err != nil {
		return nil, err
	}
	book := doc.toDomain()
	return &book, nil
}

// Create adds a book. The upstream takes multipart form data with an optional
// cover image and the category identifiers as indexed fields.
func (b *BooksClient) Create(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	body, contentType, err := encodeBookForm(input, nil)
	if err != nil {
		return nil, err
	}

	env, err := b.c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/Book",
		body:        body,
		contentType: contentType,
		resource:    "books",
	}, "could not create the book")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not create the book")
	}
	var doc bookDoc
	if err := decodeValue(env.Value, &doc); err != nil {
		return nil, err
	}
	book := doc.toDomain()
	return &book, nil
}

// Update replaces a book's fields, optionally swapping or clearing its cover.
func (b *BooksClient) Update(ctx context.Context, bookID string, input ports.BookUpdate) (*domain.Book, error) {
	body, contentType, err := encodeBookForm(input.BookInput, &input)
	if err != nil {
		return nil, err
	}

	env, err := b.c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/Book/" + url.PathEscape(bookID),
		body:        body,
		contentType: contentType,
		resource:    "books",
	}, "could not update the book")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not update the book")
	}
	var doc bookDoc
	if err := decodeValue(env.Value, &doc); err != nil {
		return nil, err
	}
	book := doc.toDomain()
	return &book, nil
}

// Delete removes a book. Empty 2xx bodies count as success.
func (b *BooksClient) Delete(ctx context.Context, bookID string) error {
	env, err := b.c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/Book/" + url.PathEscape(bookID),
		resource: "books",
	}, "could not delete the book")
	if err != nil {
		return err
	}
	if !env.IsSuccess {
		return env.Failure("could not delete the book")
	}
	return nil
}

// Categories fetches all catalog categories.
func (b *BooksClient) Categories(ctx context.Context) ([]domain.Category, error) {
	env, err := b.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/Book/Categories",
		resource: "books",
	}, "could not load the category list")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the category list")
	}
	return decodeList[domain.Category](env.Value, "categories")
}

// encodeBookForm builds the multipart body shared by create and update.
// update carries the extra IsActive/ClearImage fields when non-nil.
func encodeBookForm(input ports.BookInput, update *ports.BookUpdate) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"Title":       input.Title,
		"Author":      input.Author,
		"Description": input.Description,
	}
	if update != nil {
		fields["IsActive"] = strconv.FormatBool(update.IsActive)
		fields["ClearImage"] = strconv.FormatBool(update.ClearImage)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("encode form field %s: %w", name, err)
		}
	}
	for i, category := range input.Categories {
		if err := w.WriteField(fmt.Sprintf("Categories[%d]", i), category); err != nil {
			return nil, "", fmt.Errorf("encode category %d: %w", i, err)
		}
	}
	if input.Image != nil {
		fw, err := w.CreateFormFile("ImageFile", input.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("encode image: %w", err)
		}
		if _, err := fw.Write(input.Image.Content); err != nil {
			return nil, "", fmt.Errorf("encode image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
