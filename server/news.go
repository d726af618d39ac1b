package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/news"
)

const maxNewsLimit = 1000

// saveRequest is the body of save article request, article_id and nested article are
// accepted as aliases for the flat fields
type saveRequest struct {
	URL       string `json:"url" validate:"required,http_url,max=2048"`
	ArticleID string `json:"article_id"`
	Title     string `json:"title" validate:"required,max=1000"`
	Source    string `json:"source" validate:"max=200"`
	Article   *struct {
		URL    string `json:"url"`
		Title  string `json:"title"`
		Source string `json:"source"`
	} `json:"article,omitempty"`
}

// normalize fills flat fields from aliases
func (req *saveRequest) normalize() {
	if req.Article != nil {
		req.URL = firstNonEmpty(req.URL, req.Article.URL)
		req.Title = firstNonEmpty(req.Title, req.Article.Title)
		req.Source = firstNonEmpty(req.Source, req.Article.Source)
	}
	req.URL = strings.TrimSpace(firstNonEmpty(req.URL, req.ArticleID))
	req.Title = strings.TrimSpace(req.Title)
	req.Source = strings.TrimSpace(req.Source)
}

// newsHandler returns the news feed, provider failures are served with the mock feed
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	q, opts, err := parseNewsQuery(r.URL.Query())
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	// refresh outliving the deadline is answered with the mock feed, before the server drops the write
	_, timeout := s.config.GetServerConfig()
	ctx, cancel := context.WithTimeout(r.Context(), feedDeadline(timeout))
	defer cancel()

	feed := s.news.GetNews(ctx, q, opts)
	renderJSON(w, r, http.StatusOK, feed)
}

// feedDeadline leaves a fifth of the write timeout for rendering the feed
func feedDeadline(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return 30 * time.Second
	}
	return writeTimeout - writeTimeout/5
}

// parseNewsQuery validates query string parameters of the news request
func parseNewsQuery(v url.Values) (domain.Query, news.Options, error) {
	q := domain.Query{
		Tickers: splitList(v.Get("tickers"), true),
		Topics:  splitList(v.Get("topics"), false),
	}
	opts := news.Options{ForceRefresh: isTrue(v.Get("forceRefresh")), UseMock: isTrue(v.Get("useMock"))}

	if tf := firstNonEmpty(v.Get("time_from"), v.Get("timeFrom")); tf != "" {
		if _, err := time.Parse("20060102T1504", tf); err != nil {
			return q, opts, errors.New("time_from must be in YYYYMMDDTHHMM format")
		}
		q.TimeFrom = tf
	}

	if sort := strings.ToUpper(strings.TrimSpace(v.Get("sort"))); sort != "" {
		switch sort {
		case "LATEST", "EARLIEST", "RELEVANCE":
			q.Sort = sort
		default:
			return q, opts, errors.New("sort must be one of LATEST, EARLIEST, RELEVANCE")
		}
	}

	if l := strings.TrimSpace(v.Get("limit")); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 || limit > maxNewsLimit {
			return q, opts, fmt.Errorf("limit must be a number between 1 and %d", maxNewsLimit)
		}
		q.Limit = limit
	}
	return q, opts, nil
}

// saveArticleHandler saves article for the current user, saving twice is fine
func (s *Server) saveArticleHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderError(w, r, errAuthRequired, http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	req.normalize()
	if err := s.validate.Struct(req); err != nil {
		renderError(w, r, validationError(err), http.StatusBadRequest)
		return
	}

	article := domain.SavedArticle{URL: req.URL, Title: req.Title, Source: req.Source}
	if err := s.saved.Save(r.Context(), user.ID, article); err != nil {
		log.Printf("[ERROR] failed to save article for user %d: %v", user.ID, err)
		renderError(w, r, errors.New("failed to save article"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, map[string]string{"message": "article saved"})
}

// listSavedHandler returns saved articles of the current user, most recent first
func (s *Server) listSavedHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderError(w, r, errAuthRequired, http.StatusUnauthorized)
		return
	}

	articles, err := s.saved.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("[ERROR] failed to list saved articles for user %d: %v", user.ID, err)
		renderError(w, r, errors.New("failed to get saved articles"), http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []domain.SavedArticle{}
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"articles": articles})
}

// savedStatusHandler tells whether the current user saved the url
func (s *Server) savedStatusHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderError(w, r, errAuthRequired, http.StatusUnauthorized)
		return
	}

	articleURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if articleURL == "" {
		renderError(w, r, errors.New("url is required"), http.StatusBadRequest)
		return
	}

	saved, err := s.saved.IsSaved(r.Context(), user.ID, articleURL)
	if err != nil {
		log.Printf("[ERROR] failed to check saved article for user %d: %v", user.ID, err)
		renderError(w, r, errors.New("failed to check saved article"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"url": articleURL, "saved": saved})
}

// deleteSavedHandler removes saved article by escaped url or numeric id, missing article is fine
func (s *Server) deleteSavedHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderError(w, r, errAuthRequired, http.StatusUnauthorized)
		return
	}

	articleID := strings.TrimSpace(r.PathValue("articleId"))
	if articleID == "" {
		renderError(w, r, errors.New("article id is required"), http.StatusBadRequest)
		return
	}

	var err error
	if id, convErr := strconv.ParseInt(articleID, 10, 64); convErr == nil {
		err = s.saved.DeleteByID(r.Context(), user.ID, id)
	} else {
		err = s.saved.Delete(r.Context(), user.ID, articleID)
	}
	if err != nil {
		log.Printf("[ERROR] failed to delete saved article for user %d: %v", user.ID, err)
		renderError(w, r, errors.New("failed to delete saved article"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"message": "article removed"})
}

// splitList splits comma separated values dropping empty ones
func splitList(s string, upper bool) []string {
	var res []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if upper {
			v = strings.ToUpper(v)
		}
		res = append(res, v)
	}
	return res
}

func isTrue(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
