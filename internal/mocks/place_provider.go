package mocks

import (
	context "context"
	mock "github.com/stretchr/testify/mock"
	ports "weathermap.app/internal/ports"
)

// PlaceProvider is an autogenerated mock type for the PlaceProvider type
type PlaceProvider struct {
	mock.Mock
}

type PlaceProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *PlaceProvider) EXPECT() *PlaceProvider_Expecter {
	return &PlaceProvider_Expecter{mock: &_m.Mock}
}

// QueryPlaces provides a mock function with given fields: ctx, query
func (_m *PlaceProvider) QueryPlaces(ctx context.Context, query ports.PlaceQuery) ([]ports.PlaceElement, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for QueryPlaces")
	}

	var r0 []ports.PlaceElement
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, ports.PlaceQuery) ([]ports.PlaceElement, error)); ok {
		return rf(ctx, query)
	}
	if rf, ok := ret.Get(0).(func(context.Context, ports.PlaceQuery) []ports.PlaceElement); ok {
		r0 = rf(ctx, query)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]ports.PlaceElement)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, ports.PlaceQuery) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// PlaceProvider_QueryPlaces_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'QueryPlaces'
type PlaceProvider_QueryPlaces_Call struct {
	*mock.Call
}

// QueryPlaces is a helper method to define mock.On call
//   - ctx context.Context
//   - query ports.PlaceQuery
func (_e *PlaceProvider_Expecter) QueryPlaces(ctx interface{}, query interface{}) *PlaceProvider_QueryPlaces_Call {
	return &PlaceProvider_QueryPlaces_Call{Call: _e.mock.On("QueryPlaces", ctx, query)}
}

func (_c *PlaceProvider_QueryPlaces_Call) Run(run func(ctx context.Context, query ports.PlaceQuery)) *PlaceProvider_QueryPlaces_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(ports.PlaceQuery))
	})
	return _c
}

func (_c *PlaceProvider_QueryPlaces_Call) Return(_a0 []ports.PlaceElement, _a1 error) *PlaceProvider_QueryPlaces_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *PlaceProvider_QueryPlaces_Call) RunAndReturn(run func(context.Context, ports.PlaceQuery) ([]ports.PlaceElement, error)) *PlaceProvider_QueryPlaces_Call {
	_c.Call.Return(run)
	return _c
}

// GetProviderName provides a mock function with given fields: 
func (_m *PlaceProvider) GetProviderName() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetProviderName")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// PlaceProvider_GetProviderName_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetProviderName'
type PlaceProvider_GetProviderName_Call struct {
	*mock.Call
}

// GetProviderName is a helper method to define mock.On call
func (_e *PlaceProvider_Expecter) GetProviderName() *PlaceProvider_GetProviderName_Call {
	return &PlaceProvider_GetProviderName_Call{Call: _e.mock.On("GetProviderName")}
}

func (_c *PlaceProvider_GetProviderName_Call) Run(run func()) *PlaceProvider_GetProviderName_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *PlaceProvider_GetProviderName_Call) Return(_a0 string) *PlaceProvider_GetProviderName_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *PlaceProvider_GetProviderName_Call) RunAndReturn(run func() string) *PlaceProvider_GetProviderName_Call {
	_c.Call.Return(run)
	return _c
}

// NewPlaceProvider creates a new instance of PlaceProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewPlaceProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *PlaceProvider {
	mock := &PlaceProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
