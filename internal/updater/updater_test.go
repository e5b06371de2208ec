package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemver(t *testing.T) {
	tests := []struct {
		in      string
		want    Semver
		wantErr bool
	}{
		{in: "1.2.3", want: Semver{Major: 1, Minor: 2, Patch: 3}},
		{in: "v7.4.12", want: Semver{Major: 7, Minor: 4, Patch: 12}},
		{in: "8.0.0-beta.1", want: Semver{Major: 8, Pre: "beta.1"}},
		{in: "8.0.0-rc.2+build.7", want: Semver{Major: 8, Pre: "rc.2"}},
		{in: "8.0.0+build.7", want: Semver{Major: 8}},
		{in: "dev", wantErr: true},
		{in: "1.2.3-", wantErr: true},
		{in: "1.2.3-beta..1", wantErr: true},
		{in: "1.2", wantErr: true},
		{in: "1.x.3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSemver(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSemver_LessThan(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "1.2.3", b: "1.3.0", want: true},
		{a: "1.9.9", b: "2.0.0", want: true},
		{a: "1.2.3", b: "1.2.3", want: false},
		{a: "1.0.0-beta", b: "1.0.0", want: true},
		{a: "1.0.0", b: "1.0.0-beta", want: false},
		{a: "1.0.0-alpha", b: "1.0.0-beta", want: true},
		{a: "1.0.0-beta.2", b: "1.0.0-beta.11", want: true},
		{a: "1.0.0-alpha", b: "1.0.0-alpha.1", want: true},
		{a: "1.0.0-1", b: "1.0.0-alpha", want: true},
		{a: "1.0.0-rc.1", b: "1.0.0-rc.1", want: false},
		{a: "0.9.9", b: "1.0.0-alpha", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			a, err := ParseSemver(tt.a)
			require.NoError(t, err)
			b, err := ParseSemver(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.LessThan(b))
		})
	}
}

func TestSemver_String(t *testing.T) {
	assert.Equal(t, "1.2.3", Semver{Major: 1, Minor: 2, Patch: 3}.String())
	assert.Equal(t, "8.0.0-beta.1", Semver{Major: 8, Pre: "beta.1"}.String())
}

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "huntarr-cli/")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_Check(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v7.5.0","html_url":"https://example.com/r"}`)

	res, err := NewChecker(srv.URL, "7.4.1").Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "7.5.0", res.LatestVersion)
	assert.Equal(t, "https://example.com/r", res.ReleaseURL)

	res, err = NewChecker(srv.URL, "7.5.0").Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Available)

	res, err = NewChecker(srv.URL, "dev").Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Available)

	// a beta of the latest release still has an update
	res, err = NewChecker(srv.URL, "7.5.0-beta.3").Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestChecker_NoReleases(t *testing.T) {
	srv := releaseServer(t, http.StatusNotFound, `{}`)

	res, err := NewChecker(srv.URL, "1.0.0").Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "1.0.0", res.CurrentVersion)
}

func TestChecker_Errors(t *testing.T) {
	srv := releaseServer(t, http.StatusInternalServerError, ``)
	_, err := NewChecker(srv.URL, "1.0.0").Check(context.Background())
	assert.Error(t, err)

	srv = releaseServer(t, http.StatusOK, `{"name":"no tag"}`)
	_, err = NewChecker(srv.URL, "1.0.0").Check(context.Background())
	assert.Error(t, err)
}
