package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doll-web/pkg/models"
)

func TestCollectionQuery_Path(t *testing.T) {
	tests := []struct {
		name string
		q    CollectionQuery
		want string
	}{
		{"news list", CollectionQuery{Collection: CollectionNews, Sort: "publishDate:desc"}, "/api/news-items?sort=publishDate:desc"},
		{"solutions", CollectionQuery{Collection: CollectionSolution, Sort: "order:asc"}, "/api/solutions?sort=order:asc"},
		{"projects", CollectionQuery{Collection: CollectionProject, Sort: "title:asc", Populate: true}, "/api/projects?sort=title:asc&populate=*"},
		{
			"news lookup",
			CollectionQuery{Collection: CollectionNews, Slug: "a b/c&d", Preview: true},
			"/api/news-items?filters[slug][$eq]=a%20b%2Fc%26d&publicationState=preview",
		},
		{"bare", CollectionQuery{Collection: "x"}, "/api/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Path())
		})
	}
}

func TestCollectionQuery_SortSpec(t *testing.T) {
	f, desc := CollectionQuery{Sort: "publishDate:desc"}.SortSpec()
	assert.Equal(t, "publishDate", f)
	assert.True(t, desc)

	f, desc = CollectionQuery{Sort: "order"}.SortSpec()
	assert.Equal(t, "order", f)
	assert.False(t, desc)

	f, _ = CollectionQuery{}.SortSpec()
	assert.Empty(t, f)
}

func TestStrapiSource_FetchCollection(t *testing.T) {
	var gotAuth, gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotURI = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":1,"attributes":{"slug":"a"}}]}`)
	}))
	defer srv.Close()

	src := NewStrapiSource(context.Background(), srv.URL, "secret")
	payload, err := src.FetchCollection(context.Background(), CollectionQuery{Collection: CollectionNews, Sort: "publishDate:desc"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/api/news-items?sort=publishDate:desc", gotURI)
	assert.Len(t, models.ParseCollection(payload), 1)
}

func TestStrapiSource_NoTokenSendsNoAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	defer srv.Close()

	src := NewStrapiSource(context.Background(), srv.URL, "")
	_, err := src.FetchCollection(context.Background(), CollectionQuery{Collection: CollectionSolution})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestStrapiSource_NonSuccessIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewStrapiSource(context.Background(), srv.URL, "")
	_, err := src.FetchCollection(context.Background(), CollectionQuery{Collection: CollectionProject})
	require.Error(t, err)

	var fe *models.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusForbidden, fe.StatusCode)
	assert.Equal(t, "/api/projects", fe.Path)
	assert.Equal(t, "failed to fetch /api/projects from CMS: 403 Forbidden", err.Error())
}

func TestStrapiSource_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	src := NewStrapiSource(context.Background(), url, "")
	_, err := src.FetchCollection(context.Background(), CollectionQuery{Collection: CollectionNews})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching /api/news-items")
}

func TestStrapiSource_MissingBaseURL(t *testing.T) {
	src := NewStrapiSource(context.Background(), "", "")
	_, err := src.FetchCollection(context.Background(), CollectionQuery{Collection: CollectionNews})
	assert.ErrorIs(t, err, models.ErrMissingBaseURL)
}

func TestStrapiSource_CreateContactSubmission(t *testing.T) {
	var body map[string]map[string]any
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	src := NewStrapiSource(context.Background(), srv.URL, "tok")
	err := src.CreateContactSubmission(context.Background(), models.ContactSubmission{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/contact-submissions", path)
	assert.Equal(t, "Ada", body["data"]["firstName"])
	assert.Nil(t, body["data"]["phone"])
}

func TestStrapiSource_CreateContactSubmissionErrors(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		src := NewStrapiSource(context.Background(), "http://cms.local", "")
		err := src.CreateContactSubmission(context.Background(), models.ContactSubmission{})
		assert.ErrorIs(t, err, models.ErrMissingToken)
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "missing field")
		}))
		defer srv.Close()

		src := NewStrapiSource(context.Background(), srv.URL, "tok")
		err := src.CreateContactSubmission(context.Background(), models.ContactSubmission{})
		var se *models.SubmitError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Contains(t, err.Error(), "missing field")
	})
}
