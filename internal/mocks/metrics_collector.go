package mocks

import (
	context "context"
	mock "github.com/stretchr/testify/mock"
	time "time"
)

// MetricsCollector is an autogenerated mock type for the MetricsCollector type
type MetricsCollector struct {
	mock.Mock
}

type MetricsCollector_Expecter struct {
	mock *mock.Mock
}

func (_m *MetricsCollector) EXPECT() *MetricsCollector_Expecter {
	return &MetricsCollector_Expecter{mock: &_m.Mock}
}

// RecordCacheHit provides a mock function with given fields: ctx
func (_m *MetricsCollector) RecordCacheHit(ctx context.Context) {
	_m.Called(ctx)
}

// MetricsCollector_RecordCacheHit_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RecordCacheHit'
type MetricsCollector_RecordCacheHit_Call struct {
	*mock.Call
}

// RecordCacheHit is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MetricsCollector_Expecter) RecordCacheHit(ctx interface{}) *MetricsCollector_RecordCacheHit_Call {
	return &MetricsCollector_RecordCacheHit_Call{Call: _e.mock.On("RecordCacheHit", ctx)}
}

func (_c *MetricsCollector_RecordCacheHit_Call) Run(run func(ctx context.Context)) *MetricsCollector_RecordCacheHit_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MetricsCollector_RecordCacheHit_Call) Return() *MetricsCollector_RecordCacheHit_Call {
	_c.Call.Return()
	return _c
}

func (_c *MetricsCollector_RecordCacheHit_Call) RunAndReturn(run func(context.Context)) *MetricsCollector_RecordCacheHit_Call {
	_c.Run(run)
	return _c
}

// RecordCacheMiss provides a mock function with given fields: ctx
func (_m *MetricsCollector) RecordCacheMiss(ctx context.Context) {
	_m.Called(ctx)
}

// MetricsCollector_RecordCacheMiss_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RecordCacheMiss'
type MetricsCollector_RecordCacheMiss_Call struct {
	*mock.Call
}

// RecordCacheMiss is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MetricsCollector_Expecter) RecordCacheMiss(ctx interface{}) *MetricsCollector_RecordCacheMiss_Call {
	return &MetricsCollector_RecordCacheMiss_Call{Call: _e.mock.On("RecordCacheMiss", ctx)}
}

func (_c *MetricsCollector_RecordCacheMiss_Call) Run(run func(ctx context.Context)) *MetricsCollector_RecordCacheMiss_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MetricsCollector_RecordCacheMiss_Call) Return() *MetricsCollector_RecordCacheMiss_Call {
	_c.Call.Return()
	return _c
}

func (_c *MetricsCollector_RecordCacheMiss_Call) RunAndReturn(run func(context.Context)) *MetricsCollector_RecordCacheMiss_Call {
	_c.Run(run)
	return _c
}

// RecordLoaderAttempt provides a mock function with given fields: outcome
func (_m *MetricsCollector) RecordLoaderAttempt(outcome string) {
	_m.Called(outcome)
}

// MetricsCollector_RecordLoaderAttempt_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RecordLoaderAttempt'
type MetricsCollector_RecordLoaderAttempt_Call struct {
	*mock.Call
}

// RecordLoaderAttempt is a helper method to define mock.On call
//   - outcome string
func (_e *MetricsCollector_Expecter) RecordLoaderAttempt(outcome interface{}) *MetricsCollector_RecordLoaderAttempt_Call {
	return &MetricsCollector_RecordLoaderAttempt_Call{Call: _e.mock.On("RecordLoaderAttempt", outcome)}
}

func (_c *MetricsCollector_RecordLoaderAttempt_Call) Run(run func(outcome string)) *MetricsCollector_RecordLoaderAttempt_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MetricsCollector_RecordLoaderAttempt_Call) Return() *MetricsCollector_RecordLoaderAttempt_Call {
	_c.Call.Return()
	return _c
}

func (_c *MetricsCollector_RecordLoaderAttempt_Call) RunAndReturn(run func(string)) *MetricsCollector_RecordLoaderAttempt_Call {
	_c.Run(run)
	return _c
}

// RecordUpstreamCall provides a mock function with given fields: ctx, provider, success, duration
func (_m *MetricsCollector) RecordUpstreamCall(ctx context.Context, provider string, success bool, duration time.Duration) {
	_m.Called(ctx, provider, success, duration)
}

// MetricsCollector_RecordUpstreamCall_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RecordUpstreamCall'
type MetricsCollector_RecordUpstreamCall_Call struct {
	*mock.Call
}

// RecordUpstreamCall is a helper method to define mock.On call
//   - ctx context.Context
//   - provider string
//   - success bool
//   - duration time.Duration
func (_e *MetricsCollector_Expecter) RecordUpstreamCall(ctx interface{}, provider interface{}, success interface{}, duration interface{}) *MetricsCollector_RecordUpstreamCall_Call {
	return &MetricsCollector_RecordUpstreamCall_Call{Call: _e.mock.On("RecordUpstreamCall", ctx, provider, success, duration)}
}

func (_c *MetricsCollector_RecordUpstreamCall_Call) Run(run func(ctx context.Context, provider string, success bool, duration time.Duration)) *MetricsCollector_RecordUpstreamCall_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(bool), args[3].(time.Duration))
	})
	return _c
}

func (_c *MetricsCollector_RecordUpstreamCall_Call) Return() *MetricsCollector_RecordUpstreamCall_Call {
	_c.Call.Return()
	return _c
}

func (_c *MetricsCollector_RecordUpstreamCall_Call) RunAndReturn(run func(context.Context, string, bool, time.Duration)) *MetricsCollector_RecordUpstreamCall_Call {
	_c.Run(run)
	return _c
}

// SetActiveSessions provides a mock function with given fields: count
func (_m *MetricsCollector) SetActiveSessions(count int) {
	_m.Called(count)
}

// MetricsCollector_SetActiveSessions_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetActiveSessions'
type MetricsCollector_SetActiveSessions_Call struct {
	*mock.Call
}

// SetActiveSessions is a helper method to define mock.On call
//   - count int
func (_e *MetricsCollector_Expecter) SetActiveSessions(count interface{}) *MetricsCollector_SetActiveSessions_Call {
	return &MetricsCollector_SetActiveSessions_Call{Call: _e.mock.On("SetActiveSessions", count)}
}

func (_c *MetricsCollector_SetActiveSessions_Call) Run(run func(count int)) *MetricsCollector_SetActiveSessions_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(int))
	})
	return _c
}

func (_c *MetricsCollector_SetActiveSessions_Call) Return() *MetricsCollector_SetActiveSessions_Call {
	_c.Call.Return()
	return _c
}

func (_c *MetricsCollector_SetActiveSessions_Call) RunAndReturn(run func(int)) *MetricsCollector_SetActiveSessions_Call {
	_c.Run(run)
	return _c
}

// SetRenderedMarkers provides a mock function with given fields: session, count
func (_m *MetricsCollector) SetRenderedMarkers(session string, count int) {
	_m.Called(session, count)
}

// MetricsCollector_SetRenderedMarkers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetRenderedMarkers'
type MetricsCollector_SetRenderedMarkers_Call struct {
	*mock.Call
}

// SetRenderedMarkers is a helper method to define mock.On call
//   - session string
//   - count int
func (_e *MetricsCollector_Expecter) SetRenderedMarkers(session interface{}, count interface{}) *MetricsCollector_SetRenderedMarkers_Call {
	return &MetricsCollector_SetRenderedMarkers_Call{Call: _e.mock.On("SetRenderedMarkers", session, count)}
}

func (_c *MetricsCollector_SetRenderedMarkers_Call) Run(run func(session string, count int)) *MetricsCollector_SetRenderedMarkers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string), args[1].(int))
	})
	return _c
}

func (_c *MetricsCollector_SetRenderedMarkers_Call) Return() *MetricsCollector_SetRenderedMarkers_Call {
	_c.Call.Return()
	return _c
}

func (_c *MetricsCollector_SetRenderedMarkers_Call) RunAndReturn(run func(string, int)) *MetricsCollector_SetRenderedMarkers_Call {
	_c.Run(run)
	return _c
}

// NewMetricsCollector creates a new instance of MetricsCollector. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMetricsCollector(t interface {
	mock.TestingT
	Cleanup(func())
}) *MetricsCollector {
	mock := &MetricsCollector{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
