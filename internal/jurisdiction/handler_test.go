package jurisdiction

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

func TestHandleAssess(t *testing.T) {
	t.Run("lowercase codes are normalized before lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)
		dir.EXPECT().Exists(gomock.Any(), "jurisdiction", "SG").Return(true, nil)

		rr := testutil.DoRequest(newTestRouter(t, dir),
			testutil.NewRequest(t, http.MethodGet, "/jurisdictions/sg/risk"))

		testutil.AssertStatus(t, rr, http.StatusOK)
		res := testutil.UnmarshalResponse[Result](t, rr)
		assert.Equal(t, "SG", res.Code)
	})

	t.Run("non alpha-2 codes are rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)

		for _, code := range []string{"USA", "1X", "G"} {
			rr := testutil.DoRequest(newTestRouter(t, dir),
				testutil.NewRequest(t, http.MethodGet, "/jurisdictions/"+code+"/risk"))
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
		}
	})

	t.Run("codes outside the directory are a 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)
		dir.EXPECT().Exists(gomock.Any(), "jurisdiction", "ZZ").Return(false, nil)

		rr := testutil.DoRequest(newTestRouter(t, dir),
			testutil.NewRequest(t, http.MethodGet, "/jurisdictions/ZZ/risk"))

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}
