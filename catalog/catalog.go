package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"

	"bac_exam_platform/client"
	"bac_exam_platform/exam"
	"bac_exam_platform/models"

	"golang.org/x/sync/errgroup"
)

// fanOutLimit bounds the concurrent upstream calls of one catalog load.
const fanOutLimit = 8

var (
	ErrUnknownBook    = errors.New("Livre introuvable")
	ErrExamMissing    = errors.New("Examen introuvable")
	ErrChapters       = errors.New("Impossible de charger les chapitres")
	ErrChapterMissing = errors.New("Chapitre introuvable")
)

// Source is the part of the exam API the catalog reads from.
type Source interface {
	ExamsByBook(ctx context.Context, bookID, token string) ([]models.Exam, error)
	Exam(ctx context.Context, id int64, token string) (*models.Exam, error)
	QuestionsByExam(ctx context.Context, examID int64, token string) (*models.QuestionsList, error)
	EssayQuestionsByExam(ctx context.Context, examID int64, token string) (*models.QuestionsList, error)
	ChaptersByBook(ctx context.Context, bookID, token string) ([]models.Chapter, error)
	QCMByChapter(ctx context.Context, chapterID int64, token string) ([]models.QCMQuestion, error)
	QCMCount(ctx context.Context, chapterID int64, token string) (int, error)
}

var bookOrder = []string{"boite-merveilles", "antigone", "dernier-jour"}

func staticBooks() map[string]*models.Book {
	return map[string]*models.Book{
		"boite-merveilles": {
			ID:     "boite-merveilles",
			Title:  "La Boîte à Merveilles",
			Author: "Ahmed Sefrioui",
			Color:  "from-emerald-500 to-teal-600",
		},
		"antigone": {
			ID:     "antigone",
			Title:  "Antigone",
			Author: "Jean Anouilh",
			Color:  "from-purple-500 to-indigo-600",
		},
		"dernier-jour": {
			ID:     "dernier-jour",
			Title:  "Le Dernier Jour d'un Condamné",
			Author: "Victor Hugo",
			Color:  "from-red-500 to-rose-600",
		},
	}
}

// Catalog serves books, exams, chapters and QCM listings, caching exam
// content per book.
type Catalog struct {
	src   Source
	cache Cache

	mu    sync.RWMutex
	books map[string]*models.Book
}

func New(src Source, cache Cache) *Catalog {
	return &Catalog{src: src, cache: cache, books: staticBooks()}
}

func (c *Catalog) Books() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Book, 0, len(bookOrder))
	for _, id := range bookOrder {
		out = append(out, *c.books[id])
	}
	return out
}

func (c *Catalog) Book(id string) (models.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.books[id]
	if !ok {
		return models.Book{}, false
	}
	return *b, true
}

func (c *Catalog) setExamCount(bookID string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.books[bookID]; ok {
		b.ExamCount = n
	}
}

// ExamsByBook returns the exams of a book with their regular and essay
// questions merged by order. The first call per book loads from the API.
func (c *Catalog) ExamsByBook(ctx context.Context, bookID, token string) ([]models.Exam, error) {
	if _, ok := c.Book(bookID); !ok {
		return nil, ErrUnknownBook
	}

	exams, ok, err := c.cache.GetBookExams(ctx, bookID)
	if err != nil {
		log.Printf("Catalog cache read failed for %s: %v", bookID, err)
	}
	if ok {
		return exams, nil
	}

	exams, err = c.src.ExamsByBook(ctx, bookID, token)
	if err != nil {
		return nil, fmt.Errorf("loading exams of %s: %w", bookID, err)
	}

	complete := make([]bool, len(exams))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i := range exams {
		g.Go(func() error {
			exams[i].Questions, complete[i] = c.questions(gctx, exams[i].ID, token)
			return nil
		})
	}
	g.Wait()

	if exams == nil {
		exams = []models.Exam{}
	}
	// Partial loads are served but not cached, the cache is shared by
	// every visitor.
	if !slices.Contains(complete, false) {
		if err := c.cache.SetBookExams(ctx, bookID, exams); err != nil {
			log.Printf("Catalog cache write failed for %s: %v", bookID, err)
		}
	}
	c.setExamCount(bookID, len(exams))
	return exams, nil
}

// questions fetches both question endpoints of an exam in parallel. A
// failing endpoint contributes no questions and complete is false.
func (c *Catalog) questions(ctx context.Context, examID int64, token string) (qs []models.Question, complete bool) {
	var regular, essays []models.Question
	var g errgroup.Group
	g.Go(func() error {
		list, err := c.src.QuestionsByExam(ctx, examID, token)
		if err != nil {
			log.Printf("Error loading questions for exam %d: %v", examID, err)
			return err
		}
		regular = list.Questions
		return nil
	})
	g.Go(func() error {
		list, err := c.src.EssayQuestionsByExam(ctx, examID, token)
		if err != nil {
			log.Printf("Error loading essay questions for exam %d: %v", examID, err)
			return err
		}
		essays = list.Questions
		return nil
	})
	err := g.Wait()
	return exam.MergeByOrder(regular, essays), err == nil
}

// Exam looks the exam up in the cache before asking the API.
func (c *Catalog) Exam(ctx context.Context, id int64, token string) (*models.Exam, error) {
	cached, err := c.cache.GetExam(ctx, id)
	if err != nil {
		log.Printf("Catalog cache read failed for exam %d: %v", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	e, err := c.src.Exam(ctx, id, token)
	if err != nil {
		if client.StatusOf(err) == http.StatusNotFound {
			return nil, ErrExamMissing
		}
		return nil, fmt.Errorf("loading exam %d: %w", id, err)
	}
	var complete bool
	e.Questions, complete = c.questions(ctx, id, token)
	if !complete {
		return e, nil
	}
	if err := c.cache.SetExam(ctx, e); err != nil {
		log.Printf("Catalog cache write failed for exam %d: %v", id, err)
	}
	return e, nil
}

// Years groups the exams of a book by year, most recent first.
func (c *Catalog) Years(ctx context.Context, bookID, token string) ([]models.Year, error) {
	exams, err := c.ExamsByBook(ctx, bookID, token)
	if err != nil {
		return nil, err
	}

	byYear := make(map[string]*models.Year)
	var years []*models.Year
	for _, e := range exams {
		y, ok := byYear[e.Year]
		if !ok {
			y = &models.Year{
				ID:          e.Year,
				Year:        e.Year,
				Description: "Examens de " + e.Year,
				Regions:     []string{},
			}
			byYear[e.Year] = y
			years = append(years, y)
		}
		y.ExamCount++
		if !slices.Contains(y.Regions, e.Region) {
			y.Regions = append(y.Regions, e.Region)
		}
	}

	sort.SliceStable(years, func(i, j int) bool {
		return years[i].Year > years[j].Year
	})
	out := make([]models.Year, len(years))
	for i, y := range years {
		out[i] = *y
	}
	return out, nil
}

func (c *Catalog) ExamsByYear(ctx context.Context, bookID, year, token string) ([]models.Exam, error) {
	exams, err := c.ExamsByBook(ctx, bookID, token)
	if err != nil {
		return nil, err
	}
	out := []models.Exam{}
	for _, e := range exams {
		if e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]`)

// RegionSlug lowercases a region name and replaces every other character
// with a dash.
func RegionSlug(name string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(name), "-")
}

// Regions groups the exams of a book by region in first-seen order.
func (c *Catalog) Regions(ctx context.Context, bookID, token string) ([]models.Region, error) {
	exams, err := c.ExamsByBook(ctx, bookID, token)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	regions := []models.Region{}
	for _, e := range exams {
		slug := RegionSlug(e.Region)
		i, ok := index[slug]
		if !ok {
			i = len(regions)
			index[slug] = i
			regions = append(regions, models.Region{ID: slug, Name: e.Region})
		}
		regions[i].ExamCount++
	}
	return regions, nil
}

func (c *Catalog) ExamsByRegion(ctx context.Context, bookID, regionID, token string) ([]models.Exam, error) {
	exams, err := c.ExamsByBook(ctx, bookID, token)
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(strings.ReplaceAll(regionID, "-", " "))
	out := []models.Exam{}
	for _, e := range exams {
		if strings.Contains(strings.ToLower(e.Region), name) || RegionSlug(e.Region) == regionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Chapters lists the chapters of a book ordered by number. The list is
// first requested without credentials and retried once with the token.
func (c *Catalog) Chapters(ctx context.Context, bookID, token string) ([]models.Chapter, error) {
	chapters, err := c.src.ChaptersByBook(ctx, bookID, "")
	if err != nil && token != "" {
		log.Printf("Anonymous chapter load failed for %s, retrying with token: %v", bookID, err)
		chapters, err = c.src.ChaptersByBook(ctx, bookID, token)
	}
	if err != nil {
		if errors.Is(err, client.ErrTimeout) || errors.Is(err, client.ErrInvalidFormat) {
			return nil, err
		}
		log.Printf("Error loading chapters for %s: %v", bookID, err)
		return nil, ErrChapters
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})
	return chapters, nil
}

// QCMChapter is a chapter listed with its number of QCM questions.
type QCMChapter struct {
	models.Chapter
	QCMCount int `json:"qcmCount"`
}

// QCMChapters returns the chapters that have at least one QCM question.
// A failing count is treated as zero.
func (c *Catalog) QCMChapters(ctx context.Context, bookID, token string) ([]QCMChapter, error) {
	chapters, err := c.Chapters(ctx, bookID, token)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(chapters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i, ch := range chapters {
		g.Go(func() error {
			n, err := c.src.QCMCount(gctx, ch.ID, token)
			if err != nil {
				log.Printf("Error counting QCM of chapter %d: %v", ch.ID, err)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	g.Wait()

	out := []QCMChapter{}
	for i, ch := range chapters {
		if counts[i] > 0 {
			out = append(out, QCMChapter{Chapter: ch, QCMCount: counts[i]})
		}
	}
	return out, nil
}

func (c *Catalog) QCM(ctx context.Context, chapterID int64, token string) ([]models.QCMQuestion, error) {
	qcm, err := c.src.QCMByChapter(ctx, chapterID, token)
	if err != nil {
		return nil, fmt.Errorf("loading QCM of chapter %d: %w", chapterID, err)
	}
	if qcm == nil {
		qcm = []models.QCMQuestion{}
	}
	return qcm, nil
}

// EssayGroups builds one writing exercise per exam that has essay
// questions.
func (c *Catalog) EssayGroups(ctx context.Context, bookID, token string) ([]models.EssayGroup, error) {
	exams, err := c.ExamsByBook(ctx, bookID, token)
	if err != nil {
		return nil, err
	}

	groups := []models.EssayGroup{}
	for _, e := range exams {
		var essays []models.Question
		for _, q := range exam.SortEssayLast(e.Questions) {
			if q.Type.IsEssay() {
				essays = append(essays, q)
			}
		}
		if len(essays) == 0 {
			continue
		}
		g := models.EssayGroup{
			ExamID:    e.ID,
			ExamTitle: e.Title,
			Year:      e.Year,
			Region:    e.Region,
			Essays:    essays,
		}
		for _, q := range essays {
			g.TotalPoints += q.Points
			if q.Type == models.TypeEssaySubject && g.PreviewText == "" {
				g.PreviewText = q.Prompt
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Invalidate drops the cached exams of a book and, when id is non-zero,
// the single cached exam.
func (c *Catalog) Invalidate(ctx context.Context, bookID string, id int64) error {
	if bookID != "" {
		if err := c.cache.DeleteBook(ctx, bookID); err != nil {
			return err
		}
	}
	if id != 0 {
		return c.cache.DeleteExam(ctx, id)
	}
	return nil
}

func (c *Catalog) InvalidateAll(ctx context.Context) error {
	return c.cache.Flush(ctx)
}
