package mock

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	catalog "recipebox/recipebox/catalog"
	models "recipebox/recipebox/database/models"
)

// MockCatalogClient is a mock of CatalogClient interface.
type MockCatalogClient struct {
	ctrl     *gomock.Controller
	recorder *MockCatalogClientMockRecorder
	isgomock struct{}
}

// MockCatalogClientMockRecorder is the mock recorder for MockCatalogClient.
type MockCatalogClientMockRecorder struct {
	mock *MockCatalogClient
}

// NewMockCatalogClient creates a new mock instance.
func NewMockCatalogClient(ctrl *gomock.Controller) *MockCatalogClient {
	mock := &MockCatalogClient{ctrl: ctrl}
	mock.recorder = &MockCatalogClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCatalogClient) EXPECT() *MockCatalogClientMockRecorder {
	return m.recorder
}

// GetRecipe mocks base method.
func (m *MockCatalogClient) GetRecipe(ctx context.Context, id int64) (*catalog.RecipeInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRecipe", ctx, id)
	ret0, _ := ret[0].(*catalog.RecipeInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetRecipe indicates an expected call of GetRecipe.
func (mr *MockCatalogClientMockRecorder) GetRecipe(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRecipe", reflect.TypeOf((*MockCatalogClient)(nil).GetRecipe), ctx, id)
}

// MockRecipeEnsurer is a mock of RecipeEnsurer interface.
type MockRecipeEnsurer struct {
	ctrl     *gomock.Controller
	recorder *MockRecipeEnsurerMockRecorder
	isgomock struct{}
}

// MockRecipeEnsurerMockRecorder is the mock recorder for MockRecipeEnsurer.
type MockRecipeEnsurerMockRecorder struct {
	mock *MockRecipeEnsurer
}

// NewMockRecipeEnsurer creates a new mock instance.
func NewMockRecipeEnsurer(ctrl *gomock.Controller) *MockRecipeEnsurer {
	mock := &MockRecipeEnsurer{ctrl: ctrl}
	mock.recorder = &MockRecipeEnsurerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRecipeEnsurer) EXPECT() *MockRecipeEnsurerMockRecorder {
	return m.recorder
}

// EnsureRecipe mocks base method.
func (m *MockRecipeEnsurer) EnsureRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureRecipe", ctx, id)
	ret0, _ := ret[0].(*models.Recipe)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EnsureRecipe indicates an expected call of EnsureRecipe.
func (mr *MockRecipeEnsurerMockRecorder) EnsureRecipe(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureRecipe", reflect.TypeOf((*MockRecipeEnsurer)(nil).EnsureRecipe), ctx, id)
}
