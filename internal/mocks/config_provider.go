package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ports "weathermap.app/internal/ports"
)

// ConfigProvider is an autogenerated mock type for the ConfigProvider type
type ConfigProvider struct {
	mock.Mock
}

type ConfigProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *ConfigProvider) EXPECT() *ConfigProvider_Expecter {
	return &ConfigProvider_Expecter{mock: &_m.Mock}
}

// GetCacheConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetCacheConfig")
	}

	var r0 ports.CacheConfig
	if rf, ok := ret.Get(0).(func() ports.CacheConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.CacheConfig)
	}

	return r0
}

// ConfigProvider_GetCacheConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetCacheConfig'
type ConfigProvider_GetCacheConfig_Call struct {
	*mock.Call
}

// GetCacheConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetCacheConfig() *ConfigProvider_GetCacheConfig_Call {
	return &ConfigProvider_GetCacheConfig_Call{Call: _e.mock.On("GetCacheConfig")}
}

func (_c *ConfigProvider_GetCacheConfig_Call) Run(run func()) *ConfigProvider_GetCacheConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetCacheConfig_Call) Return(_a0 ports.CacheConfig) *ConfigProvider_GetCacheConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetCacheConfig_Call) RunAndReturn(run func() ports.CacheConfig) *ConfigProvider_GetCacheConfig_Call {
	_c.Call.Return(run)
	return _c
}

// GetGeodataConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetGeodataConfig() ports.GeodataConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetGeodataConfig")
	}

	var r0 ports.GeodataConfig
	if rf, ok := ret.Get(0).(func() ports.GeodataConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.GeodataConfig)
	}

	return r0
}

// ConfigProvider_GetGeodataConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetGeodataConfig'
type ConfigProvider_GetGeodataConfig_Call struct {
	*mock.Call
}

// GetGeodataConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetGeodataConfig() *ConfigProvider_GetGeodataConfig_Call {
	return &ConfigProvider_GetGeodataConfig_Call{Call: _e.mock.On("GetGeodataConfig")}
}

func (_c *ConfigProvider_GetGeodataConfig_Call) Run(run func()) *ConfigProvider_GetGeodataConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetGeodataConfig_Call) Return(_a0 ports.GeodataConfig) *ConfigProvider_GetGeodataConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetGeodataConfig_Call) RunAndReturn(run func() ports.GeodataConfig) *ConfigProvider_GetGeodataConfig_Call {
	_c.Call.Return(run)
	return _c
}

// GetLoaderConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetLoaderConfig() ports.LoaderConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetLoaderConfig")
	}

	var r0 ports.LoaderConfig
	if rf, ok := ret.Get(0).(func() ports.LoaderConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.LoaderConfig)
	}

	return r0
}

// ConfigProvider_GetLoaderConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetLoaderConfig'
type ConfigProvider_GetLoaderConfig_Call struct {
	*mock.Call
}

// GetLoaderConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetLoaderConfig() *ConfigProvider_GetLoaderConfig_Call {
	return &ConfigProvider_GetLoaderConfig_Call{Call: _e.mock.On("GetLoaderConfig")}
}

func (_c *ConfigProvider_GetLoaderConfig_Call) Run(run func()) *ConfigProvider_GetLoaderConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetLoaderConfig_Call) Return(_a0 ports.LoaderConfig) *ConfigProvider_GetLoaderConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetLoaderConfig_Call) RunAndReturn(run func() ports.LoaderConfig) *ConfigProvider_GetLoaderConfig_Call {
	_c.Call.Return(run)
	return _c
}

// GetMapConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetMapConfig() ports.MapConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetMapConfig")
	}

	var r0 ports.MapConfig
	if rf, ok := ret.Get(0).(func() ports.MapConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.MapConfig)
	}

	return r0
}

// ConfigProvider_GetMapConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetMapConfig'
type ConfigProvider_GetMapConfig_Call struct {
	*mock.Call
}

// GetMapConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetMapConfig() *ConfigProvider_GetMapConfig_Call {
	return &ConfigProvider_GetMapConfig_Call{Call: _e.mock.On("GetMapConfig")}
}

func (_c *ConfigProvider_GetMapConfig_Call) Run(run func()) *ConfigProvider_GetMapConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetMapConfig_Call) Return(_a0 ports.MapConfig) *ConfigProvider_GetMapConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetMapConfig_Call) RunAndReturn(run func() ports.MapConfig) *ConfigProvider_GetMapConfig_Call {
	_c.Call.Return(run)
	return _c
}

// GetServerConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetServerConfig")
	}

	var r0 ports.ServerConfig
	if rf, ok := ret.Get(0).(func() ports.ServerConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.ServerConfig)
	}

	return r0
}

// ConfigProvider_GetServerConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetServerConfig'
type ConfigProvider_GetServerConfig_Call struct {
	*mock.Call
}

// GetServerConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetServerConfig() *ConfigProvider_GetServerConfig_Call {
	return &ConfigProvider_GetServerConfig_Call{Call: _e.mock.On("GetServerConfig")}
}

func (_c *ConfigProvider_GetServerConfig_Call) Run(run func()) *ConfigProvider_GetServerConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetServerConfig_Call) Return(_a0 ports.ServerConfig) *ConfigProvider_GetServerConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetServerConfig_Call) RunAndReturn(run func() ports.ServerConfig) *ConfigProvider_GetServerConfig_Call {
	_c.Call.Return(run)
	return _c
}

// GetSessionConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetSessionConfig() ports.SessionConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetSessionConfig")
	}

	var r0 ports.SessionConfig
	if rf, ok := ret.Get(0).(func() ports.SessionConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.SessionConfig)
	}

	return r0
}

// ConfigProvider_GetSessionConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetSessionConfig'
type ConfigProvider_GetSessionConfig_Call struct {
	*mock.Call
}

// GetSessionConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetSessionConfig() *ConfigProvider_GetSessionConfig_Call {
	return &ConfigProvider_GetSessionConfig_Call{Call: _e.mock.On("GetSessionConfig")}
}

func (_c *ConfigProvider_GetSessionConfig_Call) Run(run func()) *ConfigProvider_GetSessionConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetSessionConfig_Call) Return(_a0 ports.SessionConfig) *ConfigProvider_GetSessionConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetSessionConfig_Call) RunAndReturn(run func() ports.SessionConfig) *ConfigProvider_GetSessionConfig_Call {
	_c.Call.Return(run)
	return _c
}

// GetWeatherConfig provides a mock function with given fields: 
func (_m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetWeatherConfig")
	}

	var r0 ports.WeatherConfig
	if rf, ok := ret.Get(0).(func() ports.WeatherConfig); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(ports.WeatherConfig)
	}

	return r0
}

// ConfigProvider_GetWeatherConfig_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetWeatherConfig'
type ConfigProvider_GetWeatherConfig_Call struct {
	*mock.Call
}

// GetWeatherConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetWeatherConfig() *ConfigProvider_GetWeatherConfig_Call {
	return &ConfigProvider_GetWeatherConfig_Call{Call: _e.mock.On("GetWeatherConfig")}
}

func (_c *ConfigProvider_GetWeatherConfig_Call) Run(run func()) *ConfigProvider_GetWeatherConfig_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *ConfigProvider_GetWeatherConfig_Call) Return(_a0 ports.WeatherConfig) *ConfigProvider_GetWeatherConfig_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *ConfigProvider_GetWeatherConfig_Call) RunAndReturn(run func() ports.WeatherConfig) *ConfigProvider_GetWeatherConfig_Call {
	_c.Call.Return(run)
	return _c
}

// NewConfigProvider creates a new instance of ConfigProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewConfigProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *ConfigProvider {
	mock := &ConfigProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
