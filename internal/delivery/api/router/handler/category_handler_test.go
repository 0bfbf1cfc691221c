package handler

import (
	"fmt"
	"net/http"
	"testing"

	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		fx := newAPIFixtures(t)
		category := &entity.Category{ID: uuid.Must(uuid.NewV7()), Name: "DevOps"}
		fx.categoryUC.EXPECT().CreateCategory(mock.Anything, "DevOps").Return(category, nil)

		rec := fx.do(http.MethodPost, "/categories", `{"name":"DevOps"}`, "")

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp CategoryResponse
		decodeData(t, rec, &resp)
		assert.Equal(t, category.ID, resp.ID)
		assert.Equal(t, "DevOps", resp.Name)
	})

	t.Run("duplicate", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.categoryUC.EXPECT().CreateCategory(mock.Anything, "DevOps").Return(nil, domainerrors.ErrCategoryAlreadyExists)

		rec := fx.do(http.MethodPost, "/categories", `{"name":"DevOps"}`, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CATEGORY_ALREADY_EXISTS", env.Error.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		fx := newAPIFixtures(t)

		rec := fx.do(http.MethodPost, "/categories", `{}`, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.categoryUC.EXPECT().ListCategories(mock.Anything).Return([]*entity.Category{
		{ID: uuid.Must(uuid.NewV7()), Name: "Data Science"},
		{ID: uuid.Must(uuid.NewV7()), Name: "DevOps"},
	}, nil)

	rec := fx.do(http.MethodGet, "/categories", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []CategoryResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, "Data Science", resp[0].Name)
}

func TestCategoryHandler_EmptyList(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.categoryUC.EXPECT().ListCategories(mock.Anything).Return(nil, nil)

	rec := fx.do(http.MethodGet, "/categories", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestCategoryHandler_GetCategory(t *testing.T) {
	fx := newAPIFixtures(t)
	id := uuid.Must(uuid.NewV7())
	fx.categoryUC.EXPECT().GetCategory(mock.Anything, id).Return(nil, domainerrors.ErrCategoryNotFound)

	rec := fx.do(http.MethodGet, "/categories/"+id.String(), "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CATEGORY_NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Category not found", env.Detail)
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	fx := newAPIFixtures(t)
	id := uuid.Must(uuid.NewV7())
	fx.categoryUC.EXPECT().UpdateCategory(mock.Anything, id, "Platform").Return(&entity.Category{ID: id, Name: "Platform"}, nil)

	rec := fx.do(http.MethodPut, "/categories/"+id.String(), `{"name":"Platform"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CategoryResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "Platform", resp.Name)
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		fx := newAPIFixtures(t)
		id := uuid.Must(uuid.NewV7())
		fx.categoryUC.EXPECT().DeleteCategory(mock.Anything, id).Return(nil)

		rec := fx.do(http.MethodDelete, "/categories/"+id.String(), "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		decodeData(t, rec, &body)
		assert.Equal(t, fmt.Sprintf("Category with id %s deleted successfully", id), body["message"])
	})

	t.Run("in use", func(t *testing.T) {
		fx := newAPIFixtures(t)
		id := uuid.Must(uuid.NewV7())
		fx.categoryUC.EXPECT().DeleteCategory(mock.Anything, id).Return(domainerrors.ErrCategoryInUse)

		rec := fx.do(http.MethodDelete, "/categories/"+id.String(), "", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CATEGORY_IN_USE", env.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		fx := newAPIFixtures(t)

		rec := fx.do(http.MethodDelete, "/categories/42", "", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
