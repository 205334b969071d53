// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/AMD-AIG-AIMA/Iris/common/pkg/storage (interfaces: Interface)

// Package mock_storage is a generated GoMock package.
package mock_storage

import (
	context "context"
	reflect "reflect"

	client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
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

// CopyBetweenEndpoints mocks base method.
func (m *MockInterface) CopyBetweenEndpoints(arg0 context.Context, arg1 int64, arg2 *client.StorageEndpoint, arg3 *client.StorageEndpoint, arg4 string, arg5 bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CopyBetweenEndpoints", arg0, arg1, arg2, arg3, arg4, arg5)
	ret0, _ := ret[0].(error)
	return ret0
}

// CopyBetweenEndpoints indicates an expected call of CopyBetweenEndpoints.
func (mr *MockInterfaceMockRecorder) CopyBetweenEndpoints(arg0, arg1, arg2, arg3, arg4, arg5 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CopyBetweenEndpoints", reflect.TypeOf((*MockInterface)(nil).CopyBetweenEndpoints), arg0, arg1, arg2, arg3, arg4, arg5)
}

// Delete mocks base method.
func (m *MockInterface) Delete(arg0 context.Context, arg1 *client.StorageEndpoint, arg2 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockInterfaceMockRecorder) Delete(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockInterface)(nil).Delete), arg0, arg1, arg2)
}

// Download mocks base method.
func (m *MockInterface) Download(arg0 context.Context, arg1 *client.StorageEndpoint, arg2 string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Download", arg0, arg1, arg2)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Download indicates an expected call of Download.
func (mr *MockInterfaceMockRecorder) Download(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Download", reflect.TypeOf((*MockInterface)(nil).Download), arg0, arg1, arg2)
}

// Exists mocks base method.
func (m *MockInterface) Exists(arg0 context.Context, arg1 *client.StorageEndpoint, arg2 string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exists", arg0, arg1, arg2)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exists indicates an expected call of Exists.
func (mr *MockInterfaceMockRecorder) Exists(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exists", reflect.TypeOf((*MockInterface)(nil).Exists), arg0, arg1, arg2)
}

// FetchImageBytes mocks base method.
func (m *MockInterface) FetchImageBytes(arg0 context.Context, arg1 *client.Image) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FetchImageBytes", arg0, arg1)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FetchImageBytes indicates an expected call of FetchImageBytes.
func (mr *MockInterfaceMockRecorder) FetchImageBytes(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchImageBytes", reflect.TypeOf((*MockInterface)(nil).FetchImageBytes), arg0, arg1)
}

// Invalidate mocks base method.
func (m *MockInterface) Invalidate(arg0 int64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Invalidate", arg0)
}

// Invalidate indicates an expected call of Invalidate.
func (mr *MockInterfaceMockRecorder) Invalidate(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Invalidate", reflect.TypeOf((*MockInterface)(nil).Invalidate), arg0)
}

// TestEndpoint mocks base method.
func (m *MockInterface) TestEndpoint(arg0 context.Context, arg1 *client.StorageEndpoint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TestEndpoint", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// TestEndpoint indicates an expected call of TestEndpoint.
func (mr *MockInterfaceMockRecorder) TestEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TestEndpoint", reflect.TypeOf((*MockInterface)(nil).TestEndpoint), arg0, arg1)
}

// Upload mocks base method.
func (m *MockInterface) Upload(arg0 context.Context, arg1 *client.StorageEndpoint, arg2 string, arg3 []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Upload", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(error)
	return ret0
}

// Upload indicates an expected call of Upload.
func (mr *MockInterfaceMockRecorder) Upload(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Upload", reflect.TypeOf((*MockInterface)(nil).Upload), arg0, arg1, arg2, arg3)
}
