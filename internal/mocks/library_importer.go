package mocks

import (
	context "context"
	mock "github.com/stretchr/testify/mock"
	ports "weathermap.app/internal/ports"
)

// LibraryImporter is an autogenerated mock type for the LibraryImporter type
type LibraryImporter struct {
	mock.Mock
}

type LibraryImporter_Expecter struct {
	mock *mock.Mock
}

func (_m *LibraryImporter) EXPECT() *LibraryImporter_Expecter {
	return &LibraryImporter_Expecter{mock: &_m.Mock}
}

// Import provides a mock function with given fields: ctx
func (_m *LibraryImporter) Import(ctx context.Context) (ports.MapLibrary, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Import")
	}

	var r0 ports.MapLibrary
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (ports.MapLibrary, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) ports.MapLibrary); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(ports.MapLibrary)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// LibraryImporter_Import_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Import'
type LibraryImporter_Import_Call struct {
	*mock.Call
}

// Import is a helper method to define mock.On call
//   - ctx context.Context
func (_e *LibraryImporter_Expecter) Import(ctx interface{}) *LibraryImporter_Import_Call {
	return &LibraryImporter_Import_Call{Call: _e.mock.On("Import", ctx)}
}

func (_c *LibraryImporter_Import_Call) Run(run func(ctx context.Context)) *LibraryImporter_Import_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *LibraryImporter_Import_Call) Return(_a0 ports.MapLibrary, _a1 error) *LibraryImporter_Import_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *LibraryImporter_Import_Call) RunAndReturn(run func(context.Context) (ports.MapLibrary, error)) *LibraryImporter_Import_Call {
	_c.Call.Return(run)
	return _c
}

// NewLibraryImporter creates a new instance of LibraryImporter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLibraryImporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *LibraryImporter {
	mock := &LibraryImporter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
