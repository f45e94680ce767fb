package credits

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/credits"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine returns a canned result and records what it was asked
type stubEngine struct {
	result  credits.Result
	err     error
	gotID   identity.Identity
	gotType policy.GenerationType
}

func (s *stubEngine) CheckAndDeduct(_ context.Context, id identity.Identity, genType policy.GenerationType) (credits.Result, error) {
	s.gotID = id
	s.gotType = genType

	return s.result, s.err
}

func newRouter(engine QuotaEngine, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/v1/credits/check-and-deduct", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}

		c.Next()
	}, Handler(engine, identity.NewResolver(false)))

	return router
}

func postCheck(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/credits/check-and-deduct", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:51234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandler_Success(t *testing.T) {
	engine := &stubEngine{result: credits.Result{Success: true, Remaining: 98, Bucket: credits.BucketMonthly}}
	router := newRouter(engine, "user-1")

	w := postCheck(router, `{"generation_type":"svg"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 98, resp.RemainingCredits)
	assert.Equal(t, "monthly", resp.Bucket)

	assert.Equal(t, identity.KindAuthenticated, engine.gotID.Kind)
	assert.Equal(t, "user-1", engine.gotID.UserID)
	assert.Equal(t, policy.GenerationSVG, engine.gotType)
}

func TestHandler_AnonymousIdentityHashed(t *testing.T) {
	engine := &stubEngine{result: credits.Result{Success: true, Remaining: 0, Bucket: credits.BucketDaily}}
	router := newRouter(engine, "")

	w := postCheck(router, `{"generation_type":"icon"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identity.KindAnonymous, engine.gotID.Kind)
	assert.Equal(t, identity.HashIP("203.0.113.9"), engine.gotID.IPHash)
	assert.NotContains(t, w.Body.String(), "203.0.113.9", "raw ip must never appear in a response")
}

func TestHandler_QuotaExhausted(t *testing.T) {
	engine := &stubEngine{result: credits.Result{Success: false, Remaining: 0, Bucket: credits.BucketDaily}}
	router := newRouter(engine, "")

	w := postCheck(router, `{"generation_type":"svg"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "quota_exhausted")
	assert.Contains(t, w.Body.String(), "Sign up to continue generating for free and get 6 bonus credits!")
}

func TestHandler_MonthlyExhaustedCopy(t *testing.T) {
	engine := &stubEngine{result: credits.Result{Success: false, Remaining: 0, Bucket: credits.BucketMonthly}}
	router := newRouter(engine, "user-1")

	w := postCheck(router, `{"generation_type":"svg"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "billing cycle")
}

func TestHandler_UnknownGenerationType(t *testing.T) {
	engine := &stubEngine{}
	router := newRouter(engine, "user-1")

	w := postCheck(router, `{"generation_type":"3d-model"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown generation type")
	assert.Empty(t, engine.gotType, "an unknown type must never reach the engine")
}

func TestHandler_MissingBody(t *testing.T) {
	engine := &stubEngine{}
	router := newRouter(engine, "user-1")

	w := postCheck(router, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_UnresolvableIdentity(t *testing.T) {
	engine := &stubEngine{}
	router := newRouter(engine, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/credits/check-and-deduct", strings.NewReader(`{"generation_type":"svg"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ""

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "unable to verify request origin")
}

func TestHandler_StaleAccount(t *testing.T) {
	engine := &stubEngine{err: credits.ErrAccountNotFound}
	router := newRouter(engine, "deleted-user")

	w := postCheck(router, `{"generation_type":"svg"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "account no longer exists")
}

func TestUpsellMessage_CoversAllBuckets(t *testing.T) {
	assert.Equal(t, upsellAnonymous, UpsellMessage(credits.BucketDaily))
	assert.Equal(t, upsellLifetime, UpsellMessage(credits.BucketLifetime))
	assert.Equal(t, upsellMonthly, UpsellMessage(credits.BucketMonthly))
	assert.NotEmpty(t, UpsellMessage(credits.Bucket("unknown")))
}
