// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/AMD-AIG-AIMA/Iris/common/pkg/vision (interfaces: Interface)

// Package mock_vision is a generated GoMock package.
package mock_vision

import (
	context "context"
	reflect "reflect"

	vision "github.com/AMD-AIG-AIMA/Iris/common/pkg/vision"
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

// Analyze mocks base method.
func (m *MockInterface) Analyze(arg0 context.Context, arg1 []byte, arg2 string, arg3 int64) (*vision.Result, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Analyze", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(*vision.Result)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Analyze indicates an expected call of Analyze.
func (mr *MockInterfaceMockRecorder) Analyze(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Analyze", reflect.TypeOf((*MockInterface)(nil).Analyze), arg0, arg1, arg2, arg3)
}
