package exposure

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"veridical/internal/directory/mocks"
	"veridical/pkg/testutil"
)

func newTestRouter(t *testing.T, dir *mocks.MockDirectory) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(testService(), dir, logger, nil, nil)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestHandleTrace(t *testing.T) {
	t.Run("defaults apply when query params are absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)
		dir.EXPECT().Exists(gomock.Any(), "address", "0xdeadbeef").Return(true, nil)

		rr := testutil.DoRequest(newTestRouter(t, dir),
			testutil.NewRequest(t, http.MethodGet, "/exposure/0xdeadbeef"))

		testutil.AssertStatus(t, rr, http.StatusOK)
		res := testutil.UnmarshalResponse[Result](t, rr)
		assert.Equal(t, "0xdeadbeef", res.Address)
		assert.NotEmpty(t, res.Nodes)
		for _, e := range res.Edges {
			assert.LessOrEqual(t, e.Hop, defaultMaxHops)
		}
	})

	t.Run("max_hops outside 1..6 is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)

		for _, raw := range []string{"0", "7", "abc", "-1"} {
			rr := testutil.DoRequest(newTestRouter(t, dir),
				testutil.NewRequest(t, http.MethodGet, "/exposure/0xdeadbeef?max_hops="+raw))
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
		}
	})

	t.Run("threshold outside the unit interval is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)

		for _, raw := range []string{"-0.1", "1.5", "nope"} {
			rr := testutil.DoRequest(newTestRouter(t, dir),
				testutil.NewRequest(t, http.MethodGet, "/exposure/0xdeadbeef?threshold="+raw))
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
		}
	})

	t.Run("unknown address is a 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)
		dir.EXPECT().Exists(gomock.Any(), "address", "0xunknown").Return(false, nil)

		rr := testutil.DoRequest(newTestRouter(t, dir),
			testutil.NewRequest(t, http.MethodGet, "/exposure/0xunknown"))

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}
