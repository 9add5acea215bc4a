package lineage

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
	t.Run("known dataset returns its lineage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)
		dir.EXPECT().Exists(gomock.Any(), "dataset", "ds_orders").Return(true, nil)

		rr := testutil.DoRequest(newTestRouter(t, dir),
			testutil.NewRequest(t, http.MethodGet, "/datasets/ds_orders/lineage"))

		testutil.AssertStatus(t, rr, http.StatusOK)
		res := testutil.UnmarshalResponse[Result](t, rr)
		assert.Equal(t, "ds_orders", res.DatasetID)
		assert.NotEmpty(t, res.Nodes)
	})

	t.Run("depth outside 1..5 is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)

		for _, raw := range []string{"0", "6", "x"} {
			rr := testutil.DoRequest(newTestRouter(t, dir),
				testutil.NewRequest(t, http.MethodGet, "/datasets/ds_orders/lineage?depth="+raw))
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
		}
	})

	t.Run("unknown dataset is a 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := mocks.NewMockDirectory(ctrl)
		dir.EXPECT().Exists(gomock.Any(), "dataset", "ds_ghost").Return(false, nil)

		rr := testutil.DoRequest(newTestRouter(t, dir),
			testutil.NewRequest(t, http.MethodGet, "/datasets/ds_ghost/lineage"))

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}
