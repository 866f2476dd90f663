package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/mock"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	ownerCaller = models.Caller{UserID: 1, Email: "owner@example.com", Role: models.RoleUser}
	otherCaller = models.Caller{UserID: 2, Email: "other@example.com", Role: models.RoleUser}
	adminCaller = models.Caller{UserID: 3, Email: "admin@example.com", Role: models.RoleAdmin}
)

func newTestTodoSvc(t *testing.T, ctrl *gomock.Controller) (TodoService, *mock.MockTodoRepository) {
	t.Helper()
	mockTodos := mock.NewMockTodoRepository(ctrl)
	svc := NewTodoService(mockTodos, logger.Nop())
	return svc, mockTodos
}

// ── CanAccess ────────────────────────────────────────────────────────────────

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name     string
		ownerID  int64
		callerID int64
		role     models.Role
		want     bool
	}{
		{"owner with user role", 1, 1, models.RoleUser, true},
		{"non-owner with user role", 1, 2, models.RoleUser, false},
		{"owner with admin role", 3, 3, models.RoleAdmin, true},
		{"non-owner with admin role", 1, 3, models.RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.ownerID, tt.callerID, tt.role))
		})
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestTodoCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	mockTodos.EXPECT().CreateTodo(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, td models.Todo) (models.Todo, error) {
			assert.Equal(t, ownerCaller.UserID, td.UserID, "owner is always the caller")
			assert.Equal(t, "buy milk", td.Title, "title must be trimmed")
			assert.False(t, td.Completed, "new todos start incomplete")
			_, err := uuid.Parse(td.ID)
			assert.NoError(t, err, "id must be a generated uuid")
			return td, nil
		},
	)

	created, err := svc.Create(ctx, ownerCaller, models.CreateTodoRequest{Title: "  buy milk  ", Description: "2 liters"})
	require.NoError(t, err)
	assert.Equal(t, "2 liters", created.Description)
}

func TestTodoCreate_EmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTodoSvc(t, ctrl)

	_, err := svc.Create(context.Background(), ownerCaller, models.CreateTodoRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestTodoGet_Owner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID, Title: "buy milk"}
	mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil)

	todo, err := svc.Get(ctx, ownerCaller, "todo-1")
	require.NoError(t, err)
	assert.Equal(t, stored.Title, todo.Title)
}

func TestTodoGet_ForeignRecordDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID, Title: "buy milk"}
	mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil)

	_, err := svc.Get(ctx, otherCaller, "todo-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTodoGet_AdminBypassesOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID, Title: "buy milk"}
	mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil)

	todo, err := svc.Get(ctx, adminCaller, "todo-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, todo.ID)
}

func TestTodoGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	mockTodos.EXPECT().GetTodoByID(ctx, "missing").Return(models.Todo{}, store.ErrTodoNotFound)

	_, err := svc.Get(ctx, ownerCaller, "missing")
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestTodoList_OwnerScoped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()
	completed := true

	mockTodos.EXPECT().ListTodos(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, filter store.TodoFilter) ([]models.Todo, error) {
			require.NotNil(t, filter.UserID)
			assert.Equal(t, ownerCaller.UserID, *filter.UserID)
			require.NotNil(t, filter.Completed)
			assert.True(t, *filter.Completed)
			return []models.Todo{{ID: "todo-1", UserID: ownerCaller.UserID}}, nil
		},
	)

	todos, err := svc.List(ctx, ownerCaller, &completed)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestTodoList_AdminSeesEverythingFilterIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()
	completed := true

	mockTodos.EXPECT().ListTodos(ctx, store.TodoFilter{}).Return([]models.Todo{
		{ID: "todo-1", UserID: 1},
		{ID: "todo-2", UserID: 2, Completed: true},
	}, nil)

	todos, err := svc.List(ctx, adminCaller, &completed)
	require.NoError(t, err)
	assert.Len(t, todos, 2, "admin listing carries no constraints at all")
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestTodoUpdate_Owner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()
	completed := true

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID, Title: "buy milk"}
	updated := stored
	updated.Completed = true

	gomock.InOrder(
		mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil),
		mockTodos.EXPECT().UpdateTodo(ctx, "todo-1", models.TodoUpdate{Completed: &completed}).Return(updated, nil),
	)

	result, err := svc.Update(ctx, ownerCaller, "todo-1", models.TodoUpdate{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, result.Completed)
}

func TestTodoUpdate_ForeignRecordDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()
	completed := true

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID}
	mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil)

	_, err := svc.Update(ctx, otherCaller, "todo-1", models.TodoUpdate{Completed: &completed})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTodoUpdate_EmptyPatchIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID, Title: "buy milk"}
	// no UpdateTodo expectation: the write must not happen
	mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil)

	result, err := svc.Update(ctx, ownerCaller, "todo-1", models.TodoUpdate{})
	require.NoError(t, err)
	assert.Equal(t, stored, result)
}

func TestTodoUpdate_EmptyTitleRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no repository expectations: a blanking patch never reaches the store
	svc, _ := newTestTodoSvc(t, ctrl)
	title := "   "

	_, err := svc.Update(context.Background(), ownerCaller, "todo-1", models.TodoUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestTodoUpdate_TitleTrimmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()
	title := "  renamed  "
	trimmed := "renamed"

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID, Title: "buy milk"}
	updated := stored
	updated.Title = trimmed

	gomock.InOrder(
		mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil),
		mockTodos.EXPECT().UpdateTodo(ctx, "todo-1", models.TodoUpdate{Title: &trimmed}).Return(updated, nil),
	)

	result, err := svc.Update(ctx, ownerCaller, "todo-1", models.TodoUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, trimmed, result.Title)
}

func TestTodoUpdate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()
	title := "renamed"

	mockTodos.EXPECT().GetTodoByID(ctx, "missing").Return(models.Todo{}, store.ErrTodoNotFound)

	_, err := svc.Update(ctx, ownerCaller, "missing", models.TodoUpdate{Title: &title})
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestTodoDelete_Owner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID}
	gomock.InOrder(
		mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil),
		mockTodos.EXPECT().DeleteTodo(ctx, "todo-1").Return(nil),
	)

	require.NoError(t, svc.Delete(ctx, ownerCaller, "todo-1"))
}

func TestTodoDelete_ForeignRecordDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID}
	mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil)

	err := svc.Delete(ctx, otherCaller, "todo-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTodoDelete_AdminBypassesOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	stored := models.Todo{ID: "todo-1", UserID: ownerCaller.UserID}
	gomock.InOrder(
		mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(stored, nil),
		mockTodos.EXPECT().DeleteTodo(ctx, "todo-1").Return(nil),
	)

	require.NoError(t, svc.Delete(ctx, adminCaller, "todo-1"))
}

func TestTodoDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	mockTodos.EXPECT().GetTodoByID(ctx, "missing").Return(models.Todo{}, store.ErrTodoNotFound)

	err := svc.Delete(ctx, ownerCaller, "missing")
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

// ── Admin operations ─────────────────────────────────────────────────────────

func TestListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	mockTodos.EXPECT().ListTodos(ctx, store.TodoFilter{}).Return([]models.Todo{
		{ID: "todo-1", UserID: 1},
		{ID: "todo-2", UserID: 2},
	}, nil)

	todos, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestAdminDelete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockTodos.EXPECT().GetTodoByID(ctx, "todo-1").Return(models.Todo{ID: "todo-1", UserID: 1}, nil),
		mockTodos.EXPECT().DeleteTodo(ctx, "todo-1").Return(nil),
	)

	require.NoError(t, svc.AdminDelete(ctx, "todo-1"))
}

func TestAdminDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	mockTodos.EXPECT().GetTodoByID(ctx, "missing").Return(models.Todo{}, store.ErrTodoNotFound)

	err := svc.AdminDelete(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

func TestTodoList_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTodos := newTestTodoSvc(t, ctrl)
	ctx := context.Background()

	dbErr := errors.New("db down")
	mockTodos.EXPECT().ListTodos(ctx, gomock.Any()).Return(nil, dbErr)

	_, err := svc.List(ctx, ownerCaller, nil)
	assert.ErrorIs(t, err, dbErr)
}
