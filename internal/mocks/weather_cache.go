package mocks

import (
	context "context"
	mock "github.com/stretchr/testify/mock"
	time "time"
	weather "weathermap.app/internal/core/weather"
)

// WeatherCache is an autogenerated mock type for the WeatherCache type
type WeatherCache struct {
	mock.Mock
}

type WeatherCache_Expecter struct {
	mock *mock.Mock
}

func (_m *WeatherCache) EXPECT() *WeatherCache_Expecter {
	return &WeatherCache_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, key
func (_m *WeatherCache) Get(ctx context.Context, key string) (*weather.Snapshot, error) {
	ret := _m.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 *weather.Snapshot
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*weather.Snapshot, error)); ok {
		return rf(ctx, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *weather.Snapshot); ok {
		r0 = rf(ctx, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*weather.Snapshot)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// WeatherCache_Get_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Get'
type WeatherCache_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call
//   - ctx context.Context
//   - key string
func (_e *WeatherCache_Expecter) Get(ctx interface{}, key interface{}) *WeatherCache_Get_Call {
	return &WeatherCache_Get_Call{Call: _e.mock.On("Get", ctx, key)}
}

func (_c *WeatherCache_Get_Call) Run(run func(ctx context.Context, key string)) *WeatherCache_Get_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *WeatherCache_Get_Call) Return(_a0 *weather.Snapshot, _a1 error) *WeatherCache_Get_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *WeatherCache_Get_Call) RunAndReturn(run func(context.Context, string) (*weather.Snapshot, error)) *WeatherCache_Get_Call {
	_c.Call.Return(run)
	return _c
}

// Set provides a mock function with given fields: ctx, key, snapshot, ttl
func (_m *WeatherCache) Set(ctx context.Context, key string, snapshot *weather.Snapshot, ttl time.Duration) error {
	ret := _m.Called(ctx, key, snapshot, ttl)

	if len(ret) == 0 {
		panic("no return value specified for Set")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, *weather.Snapshot, time.Duration) error); ok {
		r0 = rf(ctx, key, snapshot, ttl)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// WeatherCache_Set_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Set'
type WeatherCache_Set_Call struct {
	*mock.Call
}

// Set is a helper method to define mock.On call
//   - ctx context.Context
//   - key string
//   - snapshot *weather.Snapshot
//   - ttl time.Duration
func (_e *WeatherCache_Expecter) Set(ctx interface{}, key interface{}, snapshot interface{}, ttl interface{}) *WeatherCache_Set_Call {
	return &WeatherCache_Set_Call{Call: _e.mock.On("Set", ctx, key, snapshot, ttl)}
}

func (_c *WeatherCache_Set_Call) Run(run func(ctx context.Context, key string, snapshot *weather.Snapshot, ttl time.Duration)) *WeatherCache_Set_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(*weather.Snapshot), args[3].(time.Duration))
	})
	return _c
}

func (_c *WeatherCache_Set_Call) Return(_a0 error) *WeatherCache_Set_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *WeatherCache_Set_Call) RunAndReturn(run func(context.Context, string, *weather.Snapshot, time.Duration) error) *WeatherCache_Set_Call {
	_c.Call.Return(run)
	return _c
}

// NewWeatherCache creates a new instance of WeatherCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewWeatherCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *WeatherCache {
	mock := &WeatherCache{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
