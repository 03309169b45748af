package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/ports"
)

// Book cover uploads beyond this are rejected before buffering.
const maxImageBytes = 8 << 20

// CatalogHandler serves the book workshop: books, chapters, categories.
type CatalogHandler struct {
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListBooks lists catalog books, optionally narrowed by category or activity.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        onlyActive    query  bool    false  "Only active books"
// @Param        categoryId    query  string  false  "Category id filter"
// @Param        categoryName  query  string  false  "Category name filter"
// @Success      200  {array}  domain.Book
// @Router       /staff/books [get]
func (h *CatalogHandler) ListBooks(c echo.Context) error {
	filter := ports.ListBooksFilter{
		OnlyActive:   c.QueryParam("onlyActive") == "true",
		CategoryID:   c.QueryParam("categoryId"),
		CategoryName: c.QueryParam("categoryName"),
	}
	books, err := h.catalog.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook fetches one book.
//
// @Summary      Get book
// @Tags         books
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  domain.Book
// @Router       /staff/books/{id} [get]
func (h *CatalogHandler) GetBook(c echo.Context) error {
	book, err := h.catalog.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook creates a book from a multipart form, cover image included.
//
// @Summary      Create book
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        author       formData  string  true   "Author"
// @Param        description  formData  string  false  "Description"
// @Param        categories   formData  string  false  "Category ids, repeated"
// @Param        image        formData  file    false  "Cover image"
// @Success      201  {object}  domain.Book
// @Router       /staff/books [post]
func (h *CatalogHandler) CreateBook(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	input, err := bindBookForm(c)
	if err != nil {
		return err
	}
	if input.Title == "" || input.Author == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and author are required")
	}
	book, err := h.catalog.CreateBook(c.Request().Context(), operator, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook updates a book from a multipart form. The cover image can be
// replaced or cleared, not both.
//
// @Summary      Update book
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  domain.Book
// @Router       /staff/books/{id} [put]
func (h *CatalogHandler) UpdateBook(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	input, err := bindBookForm(c)
	if err != nil {
		return err
	}
	update := ports.BookUpdate{
		BookInput:  input,
		IsActive:   formBool(c, "isActive", true),
		ClearImage: formBool(c, "clearImage", false),
	}
	if update.ClearImage && update.Image != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot both replace and clear the cover image")
	}
	book, err := h.catalog.UpdateBook(c.Request().Context(), operator, c.Param("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book.
//
// @Summary      Delete book
// @Tags         books
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Router       /staff/books/{id} [delete]
func (h *CatalogHandler) DeleteBook(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteBook(c.Request().Context(), operator, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategories lists the catalog's category taxonomy.
//
// @Summary      List categories
// @Tags         books
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /staff/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// ListChapters lists a book's chapters.
//
// @Summary      List chapters
// @Tags         chapters
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      200  {array}  domain.Chapter
// @Router       /staff/books/{id}/chapters [get]
func (h *CatalogHandler) ListChapters(c echo.Context) error {
	chapters, err := h.catalog.ListChapters(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chapters)
}

// GetChapter fetches one chapter.
//
// @Summary      Get chapter
// @Tags         chapters
// @Produce      json
// @Param        id         path  string  true  "Book id"
// @Param        chapterId  path  string  true  "Chapter id"
// @Success      200  {object}  domain.Chapter
// @Router       /staff/books/{id}/chapters/{chapterId} [get]
func (h *CatalogHandler) GetChapter(c echo.Context) error {
	chapter, err := h.catalog.GetChapter(c.Request().Context(), c.Param("id"), c.Param("chapterId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chapter)
}

// CreateChapter appends a chapter to a book.
//
// @Summary      Create chapter
// @Tags         chapters
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "Book id"
// @Param        body  body  chapterRequest  true  "Chapter"
// @Success      201  {object}  domain.Chapter
// @Router       /staff/books/{id}/chapters [post]
func (h *CatalogHandler) CreateChapter(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	input, err := bindChapter(c)
	if err != nil {
		return err
	}
	chapter, err := h.catalog.CreateChapter(c.Request().Context(), operator, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, chapter)
}

// UpdateChapter rewrites a chapter.
//
// @Summary      Update chapter
// @Tags         chapters
// @Accept       json
// @Produce      json
// @Param        id         path  string          true  "Book id"
// @Param        chapterId  path  string          true  "Chapter id"
// @Param        body       body  chapterRequest  true  "Chapter"
// @Success      200  {object}  domain.Chapter
// @Router       /staff/books/{id}/chapters/{chapterId} [put]
func (h *CatalogHandler) UpdateChapter(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	input, err := bindChapter(c)
	if err != nil {
		return err
	}
	chapter, err := h.catalog.UpdateChapter(c.Request().Context(), operator, c.Param("id"), c.Param("chapterId"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chapter)
}

// DeleteChapter removes a chapter.
//
// @Summary      Delete chapter
// @Tags         chapters
// @Param        id         path  string  true  "Book id"
// @Param        chapterId  path  string  true  "Chapter id"
// @Success      204
// @Router       /staff/books/{id}/chapters/{chapterId} [delete]
func (h *CatalogHandler) DeleteChapter(c echo.Context) error {
	operator, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteChapter(c.Request().Context(), operator, c.Param("id"), c.Param("chapterId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindChapter(c echo.Context) (ports.ChapterInput, error) {
	var req chapterRequest
	if err := c.Bind(&req); err != nil {
		return ports.ChapterInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ChapterInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.ChapterInput{PageIndex: req.PageIndex, Title: req.Title, Content: req.Content}, nil
}

// bindBookForm reads the multipart book form. Categories may arrive as a
// repeated "categories" field or as indexed "categories[0]" keys, matching
// what browser form serializers emit.
func bindBookForm(c echo.Context) (ports.BookInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return ports.BookInput{}, echo.NewHTTPError(http.StatusBadRequest, "expected multipart form data")
	}

	input := ports.BookInput{
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		Description: c.FormValue("description"),
		Categories:  form.Value["categories"],
	}
	for i := 0; ; i++ {
		vals, ok := form.Value[fmt.Sprintf("categories[%d]", i)]
		if !ok {
			break
		}
		input.Categories = append(input.Categories, vals...)
	}

	if files := form.File["image"]; len(files) > 0 {
		header := files[0]
		if header.Size > maxImageBytes {
			return ports.BookInput{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "cover image too large")
		}
		f, err := header.Open()
		if err != nil {
			return ports.BookInput{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable cover image")
		}
		defer f.Close()
		content, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
		if err != nil {
			return ports.BookInput{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable cover image")
		}
		input.Image = &ports.FileUpload{Filename: header.Filename, Content: content}
	}

	return input, nil
}

func formBool(c echo.Context, field string, fallback bool) bool {
	raw := c.FormValue(field)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
