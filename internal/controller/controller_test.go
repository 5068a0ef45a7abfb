package controller_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linemk/medicines/internal/apiclient"
	"github.com/linemk/medicines/internal/controller"
	"github.com/linemk/medicines/internal/domain/models"
	"github.com/linemk/medicines/internal/lib/logger"
	"github.com/linemk/medicines/internal/view"
	"github.com/linemk/medicines/internal/view/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI — фиктивный бэкенд, записывает вызовы по порядку
type fakeAPI struct {
	medicines []models.Medicine
	listErr   error
	mutateErr error
	calls     []string
}

func (f *fakeAPI) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	f.calls = append(f.calls, "list")
	return f.medicines, f.listErr
}

func (f *fakeAPI) GetMedicine(ctx context.Context, name string) (*models.Medicine, error) {
	f.calls = append(f.calls, "get "+name)
	for _, med := range f.medicines {
		if med.Name == name {
			return &med, nil
		}
	}
	return nil, f.listErr
}

func (f *fakeAPI) CreateMedicine(ctx context.Context, name string, price float64) error {
	f.calls = append(f.calls, fmt.Sprintf("create %s %v", name, price))
	return f.mutateErr
}

func (f *fakeAPI) UpdateMedicine(ctx context.Context, name string, price float64) error {
	f.calls = append(f.calls, fmt.Sprintf("update %s %v", name, price))
	return f.mutateErr
}

func (f *fakeAPI) DeleteMedicine(ctx context.Context, name string) error {
	f.calls = append(f.calls, "delete "+name)
	return f.mutateErr
}

type fixture struct {
	api      *fakeAPI
	status   *mock.StatusArea
	table    *mock.Table
	prompter *mock.Prompter
	ctrl     *controller.Controller
}

func newFixture(api *fakeAPI) *fixture {
	f := &fixture{
		api:      api,
		status:   &mock.StatusArea{},
		table:    &mock.Table{},
		prompter: &mock.Prompter{},
	}
	f.ctrl = controller.New(logger.Discard(), api, controller.View{
		Status:   f.status,
		Table:    f.table,
		Prompter: f.prompter,
	})
	return f
}

func TestLoadMedicines_RendersRowsInOrder(t *testing.T) {
	f := newFixture(&fakeAPI{medicines: []models.Medicine{
		{Name: "Aspirin", Price: 5},
		{Name: "Ibuprofen", Price: 8},
	}})

	f.ctrl.LoadMedicines(context.Background())

	require.Len(t, f.table.Rows, 2)
	assert.Equal(t, "Aspirin", f.table.Rows[0].Name)
	assert.Equal(t, "5", f.table.Rows[0].Price)
	assert.Equal(t, "Ibuprofen", f.table.Rows[1].Name)
	for _, row := range f.table.Rows {
		del, ok := row.Action(view.ActionDelete)
		assert.True(t, ok)
		assert.Equal(t, row.Name, del.Key)
		change, ok := row.Action(view.ActionChangePrice)
		assert.True(t, ok)
		assert.Equal(t, row.Name, change.Key)
	}
	assert.Equal(t, []string{"Loading medicines...", "Medicines loaded."}, f.status.History)
	assert.Equal(t, "message success", f.status.Class)
}

func TestLoadMedicines_FailureKeepsTable(t *testing.T) {
	f := newFixture(&fakeAPI{medicines: []models.Medicine{{Name: "Aspirin", Price: 5}}})
	f.ctrl.LoadMedicines(context.Background())

	f.api.listErr = assert.AnError
	f.ctrl.LoadMedicines(context.Background())

	assert.Len(t, f.table.Rows, 1, "stale table stays after a failed load")
	assert.Equal(t, 1, f.table.Clears)
	assert.Equal(t, "Error loading medicines.", f.status.Text)
	assert.Equal(t, "message error", f.status.Class)
}

func TestRenderMedicines_EmptyClearsTable(t *testing.T) {
	f := newFixture(&fakeAPI{})
	f.table.AppendRow(view.NewMedicineRow("Old", "1"))

	f.ctrl.RenderMedicines(nil)

	assert.Empty(t, f.table.Rows)
}

func TestCreate_ValidInput(t *testing.T) {
	f := newFixture(&fakeAPI{})
	form := mock.NewForm(map[string]string{"name": "  Aspirin ", "price": "12.5"})

	f.ctrl.Create(context.Background(), form)

	assert.Equal(t, []string{"create Aspirin 12.5", "list"}, f.api.calls)
	assert.Equal(t, 1, form.Resets)
	assert.Contains(t, f.status.History, "Medicine created.")
}

func TestCreate_FloatForms(t *testing.T) {
	cases := []struct {
		raw  string
		call string
	}{
		{".5", "create Aspirin 0.5"},
		{"5.", "create Aspirin 5"},
		{"1e2", "create Aspirin 100"},
		{"+3", "create Aspirin 3"},
		{" 12.5 ", "create Aspirin 12.5"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			f := newFixture(&fakeAPI{})
			form := mock.NewForm(map[string]string{"name": "Aspirin", "price": tc.raw})

			f.ctrl.Create(context.Background(), form)

			assert.Equal(t, []string{tc.call, "list"}, f.api.calls)
			assert.Contains(t, f.status.History, "Medicine created.")
		})
	}
}

func TestUpdate_ExponentPrice(t *testing.T) {
	f := newFixture(&fakeAPI{})
	form := mock.NewForm(map[string]string{"update-name": "Aspirin", "update-price": "1e2"})

	f.ctrl.Update(context.Background(), form)

	assert.Equal(t, []string{"update Aspirin 100", "list"}, f.api.calls)
}

func TestCreate_InvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		values  map[string]string
		message string
	}{
		{"empty name", map[string]string{"name": "  ", "price": "5"}, "Name and price are required."},
		{"empty price", map[string]string{"name": "Aspirin", "price": ""}, "Name and price are required."},
		{"both empty", map[string]string{}, "Name and price are required."},
		{"non-numeric price", map[string]string{"name": "Aspirin", "price": "abc"}, "Price must be a number."},
		{"trailing garbage", map[string]string{"name": "Aspirin", "price": "5abc"}, "Price must be a number."},
		{"not finite", map[string]string{"name": "Aspirin", "price": "Inf"}, "Price must be a number."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(&fakeAPI{})
			form := mock.NewForm(tc.values)

			f.ctrl.Create(context.Background(), form)

			assert.Empty(t, f.api.calls, "no request for invalid input")
			assert.Equal(t, tc.message, f.status.Text)
			assert.Equal(t, "message error", f.status.Class)
			assert.Zero(t, form.Resets)
		})
	}
}

func TestCreate_RequestFailureNoResetNoReload(t *testing.T) {
	f := newFixture(&fakeAPI{mutateErr: assert.AnError})
	form := mock.NewForm(map[string]string{"name": "Aspirin", "price": "5"})

	f.ctrl.Create(context.Background(), form)

	assert.Equal(t, []string{"create Aspirin 5"}, f.api.calls)
	assert.Zero(t, form.Resets)
	assert.Equal(t, "Failed to create medicine.", f.status.Text)
}

func TestUpdate_UsesUpdateFields(t *testing.T) {
	f := newFixture(&fakeAPI{})
	form := mock.NewForm(map[string]string{"update-name": "Aspirin", "update-price": "7"})

	f.ctrl.Update(context.Background(), form)

	assert.Equal(t, []string{"update Aspirin 7", "list"}, f.api.calls)
	assert.Equal(t, 1, form.Resets)
	assert.Contains(t, f.status.History, "Medicine updated.")
}

func TestUpdate_MissingFields(t *testing.T) {
	f := newFixture(&fakeAPI{})
	form := mock.NewForm(map[string]string{"name": "Aspirin", "price": "7"})

	f.ctrl.Update(context.Background(), form)

	assert.Empty(t, f.api.calls)
	assert.Equal(t, "Name and new price are required.", f.status.Text)
}

func TestUpdate_RequestFailure(t *testing.T) {
	f := newFixture(&fakeAPI{mutateErr: assert.AnError})
	form := mock.NewForm(map[string]string{"update-name": "Aspirin", "update-price": "7"})

	f.ctrl.Update(context.Background(), form)

	assert.Equal(t, []string{"update Aspirin 7"}, f.api.calls)
	assert.Equal(t, "Failed to update medicine.", f.status.Text)
}

func TestChangePrice(t *testing.T) {
	cases := []struct {
		name      string
		confirms  []bool
		answers   []mock.Answer
		wantCalls []string
		wantAlert bool
	}{
		{
			name:     "declined",
			confirms: []bool{false},
		},
		{
			name:     "prompt dismissed",
			confirms: []bool{true},
			answers:  []mock.Answer{{Dismissed: true}},
		},
		{
			name:      "not a number",
			confirms:  []bool{true},
			answers:   []mock.Answer{{Value: "abc"}},
			wantAlert: true,
		},
		{
			name:      "negative",
			confirms:  []bool{true},
			answers:   []mock.Answer{{Value: "-5"}},
			wantAlert: true,
		},
		{
			name:      "zero",
			confirms:  []bool{true},
			answers:   []mock.Answer{{Value: "0"}},
			wantAlert: true,
		},
		{
			name:      "empty input",
			confirms:  []bool{true},
			answers:   []mock.Answer{{Value: ""}},
			wantAlert: true,
		},
		{
			name:      "valid",
			confirms:  []bool{true},
			answers:   []mock.Answer{{Value: "12.5"}},
			wantCalls: []string{"update Aspirin 12.5", "list"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(&fakeAPI{})
			f.prompter.Confirms = tc.confirms
			f.prompter.Answers = tc.answers

			f.ctrl.ChangePrice(context.Background(), "Aspirin")

			assert.Equal(t, tc.wantCalls, f.api.calls)
			assert.Equal(t, []string{`Change Price "Aspirin"?`}, f.prompter.ConfirmMessages)
			if tc.wantAlert {
				assert.Equal(t, []string{"Invalid price. Must be a positive number."}, f.prompter.Alerts)
			} else {
				assert.Empty(t, f.prompter.Alerts)
			}
		})
	}
}

func TestChangePrice_RequestFailure(t *testing.T) {
	f := newFixture(&fakeAPI{mutateErr: assert.AnError})
	f.prompter.Confirms = []bool{true}
	f.prompter.Answers = []mock.Answer{{Value: "3"}}

	f.ctrl.ChangePrice(context.Background(), "Aspirin")

	assert.Equal(t, []string{"update Aspirin 3"}, f.api.calls)
	assert.Equal(t, "Failed to update medicine price.", f.status.Text)
}

func TestChangePrice_PrompterErrorIsNoop(t *testing.T) {
	f := newFixture(&fakeAPI{})

	// сценарий пустой: Confirm вернёт ErrScriptExhausted
	f.ctrl.ChangePrice(context.Background(), "Aspirin")

	assert.Empty(t, f.api.calls)
	assert.Empty(t, f.status.History)
}

func TestDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newFixture(&fakeAPI{})
		f.prompter.Confirms = []bool{false}

		f.ctrl.Delete(context.Background(), "Aspirin")

		assert.Empty(t, f.api.calls)
		assert.Equal(t, []string{`Delete "Aspirin"?`}, f.prompter.ConfirmMessages)
	})

	t.Run("accepted", func(t *testing.T) {
		f := newFixture(&fakeAPI{})
		f.prompter.Confirms = []bool{true}

		f.ctrl.Delete(context.Background(), "Aspirin")

		assert.Equal(t, []string{"delete Aspirin", "list"}, f.api.calls)
		assert.Contains(t, f.status.History, `Deleted "Aspirin".`)
	})

	t.Run("empty name", func(t *testing.T) {
		f := newFixture(&fakeAPI{})

		f.ctrl.Delete(context.Background(), "")

		assert.Empty(t, f.api.calls)
		assert.Empty(t, f.prompter.ConfirmMessages)
	})

	t.Run("request failure", func(t *testing.T) {
		f := newFixture(&fakeAPI{mutateErr: assert.AnError})
		f.prompter.Confirms = []bool{true}

		f.ctrl.Delete(context.Background(), "Aspirin")

		assert.Equal(t, []string{"delete Aspirin"}, f.api.calls)
		assert.Equal(t, `Failed to delete "Aspirin".`, f.status.Text)
		assert.Equal(t, "message error", f.status.Class)
	})
}

func TestDispatch_RowActions(t *testing.T) {
	f := newFixture(&fakeAPI{medicines: []models.Medicine{
		{Name: "Aspirin", Price: 5},
		{Name: "Ibuprofen", Price: 8},
	}})
	f.table.OnAction(f.ctrl.Dispatch)
	f.ctrl.LoadMedicines(context.Background())
	f.api.calls = nil

	f.prompter.Confirms = []bool{true}
	assert.True(t, f.table.Click(context.Background(), 1, view.ActionDelete))

	assert.Equal(t, []string{"delete Ibuprofen", "list"}, f.api.calls)
}

func TestDispatch_UnknownActionIgnored(t *testing.T) {
	f := newFixture(&fakeAPI{})

	f.ctrl.Dispatch(context.Background(), view.Action{Kind: "archive", Key: "Aspirin"})

	assert.Empty(t, f.api.calls)
}

// Через настоящий HTTP клиент: обе формы ответа дают одинаковую таблицу
func TestLoadMedicines_ResponseShapesOverHTTP(t *testing.T) {
	bodies := map[string]string{
		"wrapped": `{"medicines":[{"name":"Aspirin","price":5},{"name":"Ibuprofen","price":8}]}`,
		"bare":    `[{"name":"Aspirin","price":5},{"name":"Ibuprofen","price":8}]`,
	}

	for shape, body := range bodies {
		t.Run(shape, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, body)
			}))
			defer srv.Close()

			client, err := apiclient.New(srv.URL)
			require.NoError(t, err)

			table := &mock.Table{}
			ctrl := controller.New(logger.Discard(), client, controller.View{Table: table})
			ctrl.LoadMedicines(context.Background())

			require.Len(t, table.Rows, 2)
			assert.Equal(t, "Aspirin", table.Rows[0].Name)
			assert.Equal(t, "Ibuprofen", table.Rows[1].Name)
		})
	}
}

// countingServer отвечает на мутации status/body, на GET /medicines пустым списком
func countingServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		if r.URL.Path == apiclient.PathMedicines {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"medicines":[]}`)
			return
		}
		if status >= 300 {
			http.Error(w, body, status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newHTTPController(t *testing.T, baseURL string, status *mock.StatusArea, prompter *mock.Prompter) *controller.Controller {
	t.Helper()
	client, err := apiclient.New(baseURL)
	require.NoError(t, err)
	return controller.New(logger.Discard(), client, controller.View{
		Status:   status,
		Table:    &mock.Table{},
		Prompter: prompter,
	})
}

func TestMutations_NonSuccessStatusOverHTTP(t *testing.T) {
	cases := []struct {
		name    string
		run     func(ctx context.Context, ctrl *controller.Controller)
		request string
		message string
	}{
		{
			name: "create",
			run: func(ctx context.Context, ctrl *controller.Controller) {
				ctrl.Create(ctx, mock.NewForm(map[string]string{"name": "Ghost", "price": "1"}))
			},
			request: "POST /create",
			message: "Failed to create medicine.",
		},
		{
			name: "update",
			run: func(ctx context.Context, ctrl *controller.Controller) {
				ctrl.Update(ctx, mock.NewForm(map[string]string{"update-name": "Ghost", "update-price": "1"}))
			},
			request: "POST /update",
			message: "Failed to update medicine.",
		},
		{
			name:    "change price",
			run:     func(ctx context.Context, ctrl *controller.Controller) { ctrl.ChangePrice(ctx, "Ghost") },
			request: "POST /update",
			message: "Failed to update medicine price.",
		},
		{
			name:    "delete",
			run:     func(ctx context.Context, ctrl *controller.Controller) { ctrl.Delete(ctx, "Ghost") },
			request: "DELETE /delete",
			message: `Failed to delete "Ghost".`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, requests := countingServer(t, http.StatusNotFound, "medicine not found")
			status := &mock.StatusArea{}
			prompter := &mock.Prompter{Confirms: []bool{true}, Answers: []mock.Answer{{Value: "1"}}}
			ctrl := newHTTPController(t, srv.URL, status, prompter)

			tc.run(context.Background(), ctrl)

			assert.Equal(t, []string{tc.request}, *requests, "no reload after a failed mutation")
			assert.Equal(t, tc.message, status.Text)
		})
	}
}

// Ответ 2xx считается успехом, даже если в теле есть поле "error"
func TestUpdate_ErrorFieldOnSuccessStatusOverHTTP(t *testing.T) {
	srv, requests := countingServer(t, http.StatusOK, `{"error":"Medicine not found"}`)
	status := &mock.StatusArea{}
	ctrl := newHTTPController(t, srv.URL, status, &mock.Prompter{})

	ctrl.Update(context.Background(), mock.NewForm(map[string]string{"update-name": "Ghost", "update-price": "1"}))

	assert.Equal(t, []string{"POST /update", "GET /medicines"}, *requests)
	assert.Contains(t, status.History, "Medicine updated.")
	assert.Equal(t, "Medicines loaded.", status.Text)
}

func TestShow(t *testing.T) {
	f := newFixture(&fakeAPI{medicines: []models.Medicine{{Name: "Vitamin C", Price: 3.2}}})

	f.ctrl.Show(context.Background(), " Vitamin C ")

	assert.Equal(t, []string{"get Vitamin C"}, f.api.calls)
	assert.Equal(t, "Vitamin C: 3.2", f.status.Text)
	assert.Equal(t, "message info", f.status.Class)
}

func TestShow_NotFound(t *testing.T) {
	f := newFixture(&fakeAPI{listErr: assert.AnError})

	f.ctrl.Show(context.Background(), "Ghost")

	assert.Equal(t, `Medicine "Ghost" not found.`, f.status.Text)
	assert.Equal(t, "message error", f.status.Class)
}
