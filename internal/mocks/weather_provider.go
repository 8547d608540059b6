package mocks

import (
	context "context"
	mock "github.com/stretchr/testify/mock"
	ports "weathermap.app/internal/ports"
)

// WeatherProvider is an autogenerated mock type for the WeatherProvider type
type WeatherProvider struct {
	mock.Mock
}

type WeatherProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *WeatherProvider) EXPECT() *WeatherProvider_Expecter {
	return &WeatherProvider_Expecter{mock: &_m.Mock}
}

// FetchForecast provides a mock function with given fields: ctx, request
func (_m *WeatherProvider) FetchForecast(ctx context.Context, request ports.ForecastRequest) (*ports.ForecastResponse, error) {
	ret := _m.Called(ctx, request)

	if len(ret) == 0 {
		panic("no return value specified for FetchForecast")
	}

	var r0 *ports.ForecastResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, ports.ForecastRequest) (*ports.ForecastResponse, error)); ok {
		return rf(ctx, request)
	}
	if rf, ok := ret.Get(0).(func(context.Context, ports.ForecastRequest) *ports.ForecastResponse); ok {
		r0 = rf(ctx, request)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*ports.ForecastResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, ports.ForecastRequest) error); ok {
		r1 = rf(ctx, request)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// WeatherProvider_FetchForecast_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FetchForecast'
type WeatherProvider_FetchForecast_Call struct {
	*mock.Call
}

// FetchForecast is a helper method to define mock.On call
//   - ctx context.Context
//   - request ports.ForecastRequest
func (_e *WeatherProvider_Expecter) FetchForecast(ctx interface{}, request interface{}) *WeatherProvider_FetchForecast_Call {
	return &WeatherProvider_FetchForecast_Call{Call: _e.mock.On("FetchForecast", ctx, request)}
}

func (_c *WeatherProvider_FetchForecast_Call) Run(run func(ctx context.Context, request ports.ForecastRequest)) *WeatherProvider_FetchForecast_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(ports.ForecastRequest))
	})
	return _c
}

func (_c *WeatherProvider_FetchForecast_Call) Return(_a0 *ports.ForecastResponse, _a1 error) *WeatherProvider_FetchForecast_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *WeatherProvider_FetchForecast_Call) RunAndReturn(run func(context.Context, ports.ForecastRequest) (*ports.ForecastResponse, error)) *WeatherProvider_FetchForecast_Call {
	_c.Call.Return(run)
	return _c
}

// GetProviderName provides a mock function with given fields: 
func (_m *WeatherProvider) GetProviderName() string {
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

// WeatherProvider_GetProviderName_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetProviderName'
type WeatherProvider_GetProviderName_Call struct {
	*mock.Call
}

// GetProviderName is a helper method to define mock.On call
func (_e *WeatherProvider_Expecter) GetProviderName() *WeatherProvider_GetProviderName_Call {
	return &WeatherProvider_GetProviderName_Call{Call: _e.mock.On("GetProviderName")}
}

func (_c *WeatherProvider_GetProviderName_Call) Run(run func()) *WeatherProvider_GetProviderName_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *WeatherProvider_GetProviderName_Call) Return(_a0 string) *WeatherProvider_GetProviderName_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *WeatherProvider_GetProviderName_Call) RunAndReturn(run func() string) *WeatherProvider_GetProviderName_Call {
	_c.Call.Return(run)
	return _c
}

// NewWeatherProvider creates a new instance of WeatherProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewWeatherProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *WeatherProvider {
	mock := &WeatherProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
