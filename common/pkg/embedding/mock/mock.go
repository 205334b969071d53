// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/AMD-AIG-AIMA/Iris/common/pkg/embedding (interfaces: Interface)

// Package mock_embedding is a generated GoMock package.
package mock_embedding

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
)

// MockInterface is a mock of Interface interface.
type MockInterface struct {
	ctrl     *gomock.Controller
	recorder *MockInterfaceMockRecorder
}

// MockInterfaceMockRecorder is the mock recorder for MockInterface.
type MockInterfaceMockRecorder struct {
	mock *MockInterface
}

// NewMockInterface creates a new mock instance.
func NewMockInterface(ctrl *gomock.Controller) *MockInterface {
	mock := &MockInterface{ctrl: ctrl}
	mock.recorder = &MockInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInterface) EXPECT() *MockInterfaceMockRecorder {
	return m.recorder
}

// Dimensions mocks base method.
func (m *MockInterface) Dimensions() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Dimensions")
	ret0, _ := ret[0].(int)
	return ret0
}

// Dimensions indicates an expected call of Dimensions.
func (mr *MockInterfaceMockRecorder) Dimensions() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dimensions", reflect.TypeOf((*MockInterface)(nil).Dimensions))
}

// Embed mocks base method.
func (m *MockInterface) Embed(arg0 context.Context, arg1 string) ([]float32, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Embed", arg0, arg1)
	ret0, _ := ret[0].([]float32)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Embed indicates an expected call of Embed.
func (mr *MockInterfaceMockRecorder) Embed(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Embed", reflect.TypeOf((*MockInterface)(nil).Embed), arg0, arg1)
}

// EmbedForImage mocks base method.
func (m *MockInterface) EmbedForImage(arg0 context.Context, arg1 string, arg2 []string) ([]float32, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EmbedForImage", arg0, arg1, arg2)
	ret0, _ := ret[0].([]float32)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EmbedForImage indicates an expected call of EmbedForImage.
func (mr *MockInterfaceMockRecorder) EmbedForImage(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EmbedForImage", reflect.TypeOf((*MockInterface)(nil).EmbedForImage), arg0, arg1, arg2)
}
