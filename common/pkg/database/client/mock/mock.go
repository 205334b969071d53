// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client (interfaces: Interface)

// Package mock_client is a generated GoMock package.
package mock_client

import (
	context "context"
	reflect "reflect"
	time "time"

	client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	model "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
	squirrel "github.com/Masterminds/squirrel"
	gomock "github.com/golang/mock/gomock"
	types "github.com/jmoiron/sqlx/types"
	pgvector "github.com/pgvector/pgvector-go"
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

// AddImagesToCollection mocks base method.
func (m *MockInterface) AddImagesToCollection(arg0 context.Context, arg1 int64, arg2 []int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddImagesToCollection", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddImagesToCollection indicates an expected call of AddImagesToCollection.
func (mr *MockInterfaceMockRecorder) AddImagesToCollection(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddImagesToCollection", reflect.TypeOf((*MockInterface)(nil).AddImagesToCollection), arg0, arg1, arg2)
}

// BatchAddImageTags mocks base method.
func (m *MockInterface) BatchAddImageTags(arg0 context.Context, arg1 []int64, arg2 []int64, arg3 string, arg4 string, arg5 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BatchAddImageTags", arg0, arg1, arg2, arg3, arg4, arg5)
	ret0, _ := ret[0].(error)
	return ret0
}

// BatchAddImageTags indicates an expected call of BatchAddImageTags.
func (mr *MockInterfaceMockRecorder) BatchAddImageTags(arg0, arg1, arg2, arg3, arg4, arg5 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BatchAddImageTags", reflect.TypeOf((*MockInterface)(nil).BatchAddImageTags), arg0, arg1, arg2, arg3, arg4, arg5)
}

// BatchReplaceImageTags mocks base method.
func (m *MockInterface) BatchReplaceImageTags(arg0 context.Context, arg1 []int64, arg2 []int64, arg3 string, arg4 string, arg5 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BatchReplaceImageTags", arg0, arg1, arg2, arg3, arg4, arg5)
	ret0, _ := ret[0].(error)
	return ret0
}

// BatchReplaceImageTags indicates an expected call of BatchReplaceImageTags.
func (mr *MockInterfaceMockRecorder) BatchReplaceImageTags(arg0, arg1, arg2, arg3, arg4, arg5 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BatchReplaceImageTags", reflect.TypeOf((*MockInterface)(nil).BatchReplaceImageTags), arg0, arg1, arg2, arg3, arg4, arg5)
}

// CancelTask mocks base method.
func (m *MockInterface) CancelTask(arg0 context.Context, arg1 string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CancelTask", arg0, arg1)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CancelTask indicates an expected call of CancelTask.
func (mr *MockInterfaceMockRecorder) CancelTask(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CancelTask", reflect.TypeOf((*MockInterface)(nil).CancelTask), arg0, arg1)
}

// ClaimNextTask mocks base method.
func (m *MockInterface) ClaimNextTask(arg0 context.Context, arg1 []string) (*client.Task, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimNextTask", arg0, arg1)
	ret0, _ := ret[0].(*client.Task)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimNextTask indicates an expected call of ClaimNextTask.
func (mr *MockInterfaceMockRecorder) ClaimNextTask(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimNextTask", reflect.TypeOf((*MockInterface)(nil).ClaimNextTask), arg0, arg1)
}

// ClearFinishedTasks mocks base method.
func (m *MockInterface) ClearFinishedTasks(arg0 context.Context, arg1 []string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearFinishedTasks", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClearFinishedTasks indicates an expected call of ClearFinishedTasks.
func (mr *MockInterfaceMockRecorder) ClearFinishedTasks(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearFinishedTasks", reflect.TypeOf((*MockInterface)(nil).ClearFinishedTasks), arg0, arg1)
}

// ClearPendingTasks mocks base method.
func (m *MockInterface) ClearPendingTasks(arg0 context.Context, arg1 []string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearPendingTasks", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClearPendingTasks indicates an expected call of ClearPendingTasks.
func (mr *MockInterfaceMockRecorder) ClearPendingTasks(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearPendingTasks", reflect.TypeOf((*MockInterface)(nil).ClearPendingTasks), arg0, arg1)
}

// CompleteTask mocks base method.
func (m *MockInterface) CompleteTask(arg0 context.Context, arg1 string, arg2 types.JSONText) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteTask", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// CompleteTask indicates an expected call of CompleteTask.
func (mr *MockInterfaceMockRecorder) CompleteTask(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteTask", reflect.TypeOf((*MockInterface)(nil).CompleteTask), arg0, arg1, arg2)
}

// CountAuditLogs mocks base method.
func (m *MockInterface) CountAuditLogs(arg0 context.Context, arg1 squirrel.Sqlizer) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountAuditLogs", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountAuditLogs indicates an expected call of CountAuditLogs.
func (mr *MockInterfaceMockRecorder) CountAuditLogs(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountAuditLogs", reflect.TypeOf((*MockInterface)(nil).CountAuditLogs), arg0, arg1)
}

// CountCollectionImages mocks base method.
func (m *MockInterface) CountCollectionImages(arg0 context.Context, arg1 int64) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountCollectionImages", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountCollectionImages indicates an expected call of CountCollectionImages.
func (mr *MockInterfaceMockRecorder) CountCollectionImages(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountCollectionImages", reflect.TypeOf((*MockInterface)(nil).CountCollectionImages), arg0, arg1)
}

// CountImages mocks base method.
func (m *MockInterface) CountImages(arg0 context.Context, arg1 squirrel.Sqlizer) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountImages", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountImages indicates an expected call of CountImages.
func (mr *MockInterfaceMockRecorder) CountImages(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountImages", reflect.TypeOf((*MockInterface)(nil).CountImages), arg0, arg1)
}

// CountImagesByHash mocks base method.
func (m *MockInterface) CountImagesByHash(arg0 context.Context, arg1 string) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountImagesByHash", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountImagesByHash indicates an expected call of CountImagesByHash.
func (mr *MockInterfaceMockRecorder) CountImagesByHash(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountImagesByHash", reflect.TypeOf((*MockInterface)(nil).CountImagesByHash), arg0, arg1)
}

// CountLocationsByEndpoint mocks base method.
func (m *MockInterface) CountLocationsByEndpoint(arg0 context.Context, arg1 int64) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountLocationsByEndpoint", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountLocationsByEndpoint indicates an expected call of CountLocationsByEndpoint.
func (mr *MockInterfaceMockRecorder) CountLocationsByEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountLocationsByEndpoint", reflect.TypeOf((*MockInterface)(nil).CountLocationsByEndpoint), arg0, arg1)
}

// CountLocationsByStatus mocks base method.
func (m *MockInterface) CountLocationsByStatus(arg0 context.Context, arg1 int64, arg2 string) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountLocationsByStatus", arg0, arg1, arg2)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountLocationsByStatus indicates an expected call of CountLocationsByStatus.
func (mr *MockInterfaceMockRecorder) CountLocationsByStatus(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountLocationsByStatus", reflect.TypeOf((*MockInterface)(nil).CountLocationsByStatus), arg0, arg1, arg2)
}

// CountStorageEndpoints mocks base method.
func (m *MockInterface) CountStorageEndpoints(arg0 context.Context, arg1 squirrel.Sqlizer) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountStorageEndpoints", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountStorageEndpoints indicates an expected call of CountStorageEndpoints.
func (mr *MockInterfaceMockRecorder) CountStorageEndpoints(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountStorageEndpoints", reflect.TypeOf((*MockInterface)(nil).CountStorageEndpoints), arg0, arg1)
}

// CountTags mocks base method.
func (m *MockInterface) CountTags(arg0 context.Context, arg1 squirrel.Sqlizer) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountTags", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountTags indicates an expected call of CountTags.
func (mr *MockInterfaceMockRecorder) CountTags(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountTags", reflect.TypeOf((*MockInterface)(nil).CountTags), arg0, arg1)
}

// CountTasks mocks base method.
func (m *MockInterface) CountTasks(arg0 context.Context, arg1 squirrel.Sqlizer) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountTasks", arg0, arg1)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountTasks indicates an expected call of CountTasks.
func (mr *MockInterfaceMockRecorder) CountTasks(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountTasks", reflect.TypeOf((*MockInterface)(nil).CountTasks), arg0, arg1)
}

// CountTasksByStatus mocks base method.
func (m *MockInterface) CountTasksByStatus(arg0 context.Context, arg1 []string) (map[string]int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountTasksByStatus", arg0, arg1)
	ret0, _ := ret[0].(map[string]int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountTasksByStatus indicates an expected call of CountTasksByStatus.
func (mr *MockInterfaceMockRecorder) CountTasksByStatus(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountTasksByStatus", reflect.TypeOf((*MockInterface)(nil).CountTasksByStatus), arg0, arg1)
}

// CreateStorageTasksExclusive mocks base method.
func (m *MockInterface) CreateStorageTasksExclusive(arg0 context.Context, arg1 []*client.Task, arg2 []int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateStorageTasksExclusive", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateStorageTasksExclusive indicates an expected call of CreateStorageTasksExclusive.
func (mr *MockInterfaceMockRecorder) CreateStorageTasksExclusive(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateStorageTasksExclusive", reflect.TypeOf((*MockInterface)(nil).CreateStorageTasksExclusive), arg0, arg1, arg2)
}

// CreateTag mocks base method.
func (m *MockInterface) CreateTag(arg0 context.Context, arg1 *client.Tag) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateTag", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateTag indicates an expected call of CreateTag.
func (mr *MockInterfaceMockRecorder) CreateTag(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTag", reflect.TypeOf((*MockInterface)(nil).CreateTag), arg0, arg1)
}

// DeleteCollection mocks base method.
func (m *MockInterface) DeleteCollection(arg0 context.Context, arg1 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteCollection", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteCollection indicates an expected call of DeleteCollection.
func (mr *MockInterfaceMockRecorder) DeleteCollection(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteCollection", reflect.TypeOf((*MockInterface)(nil).DeleteCollection), arg0, arg1)
}

// DeleteExpiredUserTokens mocks base method.
func (m *MockInterface) DeleteExpiredUserTokens(arg0 context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteExpiredUserTokens", arg0)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteExpiredUserTokens indicates an expected call of DeleteExpiredUserTokens.
func (mr *MockInterfaceMockRecorder) DeleteExpiredUserTokens(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteExpiredUserTokens", reflect.TypeOf((*MockInterface)(nil).DeleteExpiredUserTokens), arg0)
}

// DeleteImageCascade mocks base method.
func (m *MockInterface) DeleteImageCascade(arg0 context.Context, arg1 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteImageCascade", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteImageCascade indicates an expected call of DeleteImageCascade.
func (mr *MockInterfaceMockRecorder) DeleteImageCascade(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteImageCascade", reflect.TypeOf((*MockInterface)(nil).DeleteImageCascade), arg0, arg1)
}

// DeleteImageLocation mocks base method.
func (m *MockInterface) DeleteImageLocation(arg0 context.Context, arg1 int64, arg2 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteImageLocation", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteImageLocation indicates an expected call of DeleteImageLocation.
func (mr *MockInterfaceMockRecorder) DeleteImageLocation(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteImageLocation", reflect.TypeOf((*MockInterface)(nil).DeleteImageLocation), arg0, arg1, arg2)
}

// DeleteImageTags mocks base method.
func (m *MockInterface) DeleteImageTags(arg0 context.Context, arg1 int64, arg2 []int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteImageTags", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteImageTags indicates an expected call of DeleteImageTags.
func (mr *MockInterfaceMockRecorder) DeleteImageTags(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteImageTags", reflect.TypeOf((*MockInterface)(nil).DeleteImageTags), arg0, arg1, arg2)
}

// DeleteLocationsByEndpoint mocks base method.
func (m *MockInterface) DeleteLocationsByEndpoint(arg0 context.Context, arg1 int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteLocationsByEndpoint", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteLocationsByEndpoint indicates an expected call of DeleteLocationsByEndpoint.
func (mr *MockInterfaceMockRecorder) DeleteLocationsByEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteLocationsByEndpoint", reflect.TypeOf((*MockInterface)(nil).DeleteLocationsByEndpoint), arg0, arg1)
}

// DeleteStorageEndpoint mocks base method.
func (m *MockInterface) DeleteStorageEndpoint(arg0 context.Context, arg1 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteStorageEndpoint", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteStorageEndpoint indicates an expected call of DeleteStorageEndpoint.
func (mr *MockInterfaceMockRecorder) DeleteStorageEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteStorageEndpoint", reflect.TypeOf((*MockInterface)(nil).DeleteStorageEndpoint), arg0, arg1)
}

// DeleteTag mocks base method.
func (m *MockInterface) DeleteTag(arg0 context.Context, arg1 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteTag", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteTag indicates an expected call of DeleteTag.
func (mr *MockInterfaceMockRecorder) DeleteTag(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteTag", reflect.TypeOf((*MockInterface)(nil).DeleteTag), arg0, arg1)
}

// DeleteUserToken mocks base method.
func (m *MockInterface) DeleteUserToken(arg0 context.Context, arg1 string, arg2 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteUserToken", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteUserToken indicates an expected call of DeleteUserToken.
func (mr *MockInterfaceMockRecorder) DeleteUserToken(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteUserToken", reflect.TypeOf((*MockInterface)(nil).DeleteUserToken), arg0, arg1, arg2)
}

// DeleteUserTokensByUser mocks base method.
func (m *MockInterface) DeleteUserTokensByUser(arg0 context.Context, arg1 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteUserTokensByUser", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteUserTokensByUser indicates an expected call of DeleteUserTokensByUser.
func (mr *MockInterfaceMockRecorder) DeleteUserTokensByUser(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteUserTokensByUser", reflect.TypeOf((*MockInterface)(nil).DeleteUserTokensByUser), arg0, arg1)
}

// FailTask mocks base method.
func (m *MockInterface) FailTask(arg0 context.Context, arg1 string, arg2 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FailTask", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// FailTask indicates an expected call of FailTask.
func (mr *MockInterfaceMockRecorder) FailTask(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FailTask", reflect.TypeOf((*MockInterface)(nil).FailTask), arg0, arg1, arg2)
}

// FilterImageIdsWithActiveAnalyze mocks base method.
func (m *MockInterface) FilterImageIdsWithActiveAnalyze(arg0 context.Context, arg1 []int64) (map[int64]bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FilterImageIdsWithActiveAnalyze", arg0, arg1)
	ret0, _ := ret[0].(map[int64]bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FilterImageIdsWithActiveAnalyze indicates an expected call of FilterImageIdsWithActiveAnalyze.
func (mr *MockInterfaceMockRecorder) FilterImageIdsWithActiveAnalyze(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FilterImageIdsWithActiveAnalyze", reflect.TypeOf((*MockInterface)(nil).FilterImageIdsWithActiveAnalyze), arg0, arg1)
}

// GetBackupEndpoint mocks base method.
func (m *MockInterface) GetBackupEndpoint(arg0 context.Context) (*client.StorageEndpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBackupEndpoint", arg0)
	ret0, _ := ret[0].(*client.StorageEndpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBackupEndpoint indicates an expected call of GetBackupEndpoint.
func (mr *MockInterfaceMockRecorder) GetBackupEndpoint(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBackupEndpoint", reflect.TypeOf((*MockInterface)(nil).GetBackupEndpoint), arg0)
}

// GetCollection mocks base method.
func (m *MockInterface) GetCollection(arg0 context.Context, arg1 int64) (*client.Collection, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCollection", arg0, arg1)
	ret0, _ := ret[0].(*client.Collection)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCollection indicates an expected call of GetCollection.
func (mr *MockInterfaceMockRecorder) GetCollection(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCollection", reflect.TypeOf((*MockInterface)(nil).GetCollection), arg0, arg1)
}

// GetCollectionImageIds mocks base method.
func (m *MockInterface) GetCollectionImageIds(arg0 context.Context, arg1 int64) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCollectionImageIds", arg0, arg1)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCollectionImageIds indicates an expected call of GetCollectionImageIds.
func (mr *MockInterfaceMockRecorder) GetCollectionImageIds(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCollectionImageIds", reflect.TypeOf((*MockInterface)(nil).GetCollectionImageIds), arg0, arg1)
}

// GetConfigValue mocks base method.
func (m *MockInterface) GetConfigValue(arg0 context.Context, arg1 string) (string, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetConfigValue", arg0, arg1)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetConfigValue indicates an expected call of GetConfigValue.
func (mr *MockInterfaceMockRecorder) GetConfigValue(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetConfigValue", reflect.TypeOf((*MockInterface)(nil).GetConfigValue), arg0, arg1)
}

// GetDefaultUploadEndpoint mocks base method.
func (m *MockInterface) GetDefaultUploadEndpoint(arg0 context.Context) (*client.StorageEndpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDefaultUploadEndpoint", arg0)
	ret0, _ := ret[0].(*client.StorageEndpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDefaultUploadEndpoint indicates an expected call of GetDefaultUploadEndpoint.
func (mr *MockInterfaceMockRecorder) GetDefaultUploadEndpoint(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDefaultUploadEndpoint", reflect.TypeOf((*MockInterface)(nil).GetDefaultUploadEndpoint), arg0)
}

// GetImage mocks base method.
func (m *MockInterface) GetImage(arg0 context.Context, arg1 int64) (*client.Image, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetImage", arg0, arg1)
	ret0, _ := ret[0].(*client.Image)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetImage indicates an expected call of GetImage.
func (mr *MockInterfaceMockRecorder) GetImage(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetImage", reflect.TypeOf((*MockInterface)(nil).GetImage), arg0, arg1)
}

// GetImageLocation mocks base method.
func (m *MockInterface) GetImageLocation(arg0 context.Context, arg1 int64, arg2 int64) (*client.ImageLocation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetImageLocation", arg0, arg1, arg2)
	ret0, _ := ret[0].(*client.ImageLocation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetImageLocation indicates an expected call of GetImageLocation.
func (mr *MockInterfaceMockRecorder) GetImageLocation(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetImageLocation", reflect.TypeOf((*MockInterface)(nil).GetImageLocation), arg0, arg1, arg2)
}

// GetImageLocations mocks base method.
func (m *MockInterface) GetImageLocations(arg0 context.Context, arg1 int64) ([]*client.ImageLocation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetImageLocations", arg0, arg1)
	ret0, _ := ret[0].([]*client.ImageLocation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetImageLocations indicates an expected call of GetImageLocations.
func (mr *MockInterfaceMockRecorder) GetImageLocations(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetImageLocations", reflect.TypeOf((*MockInterface)(nil).GetImageLocations), arg0, arg1)
}

// GetImageTags mocks base method.
func (m *MockInterface) GetImageTags(arg0 context.Context, arg1 int64) ([]*client.ImageTagDetail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetImageTags", arg0, arg1)
	ret0, _ := ret[0].([]*client.ImageTagDetail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetImageTags indicates an expected call of GetImageTags.
func (mr *MockInterfaceMockRecorder) GetImageTags(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetImageTags", reflect.TypeOf((*MockInterface)(nil).GetImageTags), arg0, arg1)
}

// GetImageTagsByImageIds mocks base method.
func (m *MockInterface) GetImageTagsByImageIds(arg0 context.Context, arg1 []int64) ([]*client.ImageTagDetail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetImageTagsByImageIds", arg0, arg1)
	ret0, _ := ret[0].([]*client.ImageTagDetail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetImageTagsByImageIds indicates an expected call of GetImageTagsByImageIds.
func (mr *MockInterfaceMockRecorder) GetImageTagsByImageIds(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetImageTagsByImageIds", reflect.TypeOf((*MockInterface)(nil).GetImageTagsByImageIds), arg0, arg1)
}

// GetImagesByIds mocks base method.
func (m *MockInterface) GetImagesByIds(arg0 context.Context, arg1 []int64) ([]*client.Image, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetImagesByIds", arg0, arg1)
	ret0, _ := ret[0].([]*client.Image)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetImagesByIds indicates an expected call of GetImagesByIds.
func (mr *MockInterfaceMockRecorder) GetImagesByIds(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetImagesByIds", reflect.TypeOf((*MockInterface)(nil).GetImagesByIds), arg0, arg1)
}

// GetLocationsByImageIds mocks base method.
func (m *MockInterface) GetLocationsByImageIds(arg0 context.Context, arg1 []int64) ([]*client.ImageLocation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLocationsByImageIds", arg0, arg1)
	ret0, _ := ret[0].([]*client.ImageLocation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLocationsByImageIds indicates an expected call of GetLocationsByImageIds.
func (mr *MockInterfaceMockRecorder) GetLocationsByImageIds(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLocationsByImageIds", reflect.TypeOf((*MockInterface)(nil).GetLocationsByImageIds), arg0, arg1)
}

// GetPrimaryLocation mocks base method.
func (m *MockInterface) GetPrimaryLocation(arg0 context.Context, arg1 int64) (*client.ImageLocation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPrimaryLocation", arg0, arg1)
	ret0, _ := ret[0].(*client.ImageLocation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPrimaryLocation indicates an expected call of GetPrimaryLocation.
func (mr *MockInterfaceMockRecorder) GetPrimaryLocation(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPrimaryLocation", reflect.TypeOf((*MockInterface)(nil).GetPrimaryLocation), arg0, arg1)
}

// GetStorageEndpoint mocks base method.
func (m *MockInterface) GetStorageEndpoint(arg0 context.Context, arg1 int64) (*client.StorageEndpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorageEndpoint", arg0, arg1)
	ret0, _ := ret[0].(*client.StorageEndpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetStorageEndpoint indicates an expected call of GetStorageEndpoint.
func (mr *MockInterfaceMockRecorder) GetStorageEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorageEndpoint", reflect.TypeOf((*MockInterface)(nil).GetStorageEndpoint), arg0, arg1)
}

// GetStorageEndpointByName mocks base method.
func (m *MockInterface) GetStorageEndpointByName(arg0 context.Context, arg1 string) (*client.StorageEndpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorageEndpointByName", arg0, arg1)
	ret0, _ := ret[0].(*client.StorageEndpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetStorageEndpointByName indicates an expected call of GetStorageEndpointByName.
func (mr *MockInterfaceMockRecorder) GetStorageEndpointByName(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorageEndpointByName", reflect.TypeOf((*MockInterface)(nil).GetStorageEndpointByName), arg0, arg1)
}

// GetTag mocks base method.
func (m *MockInterface) GetTag(arg0 context.Context, arg1 int64) (*client.Tag, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTag", arg0, arg1)
	ret0, _ := ret[0].(*client.Tag)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTag indicates an expected call of GetTag.
func (mr *MockInterfaceMockRecorder) GetTag(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTag", reflect.TypeOf((*MockInterface)(nil).GetTag), arg0, arg1)
}

// GetTagByName mocks base method.
func (m *MockInterface) GetTagByName(arg0 context.Context, arg1 string) (*client.Tag, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTagByName", arg0, arg1)
	ret0, _ := ret[0].(*client.Tag)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTagByName indicates an expected call of GetTagByName.
func (mr *MockInterfaceMockRecorder) GetTagByName(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTagByName", reflect.TypeOf((*MockInterface)(nil).GetTagByName), arg0, arg1)
}

// GetTagsByNames mocks base method.
func (m *MockInterface) GetTagsByNames(arg0 context.Context, arg1 []string) ([]*client.Tag, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTagsByNames", arg0, arg1)
	ret0, _ := ret[0].([]*client.Tag)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTagsByNames indicates an expected call of GetTagsByNames.
func (mr *MockInterfaceMockRecorder) GetTagsByNames(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTagsByNames", reflect.TypeOf((*MockInterface)(nil).GetTagsByNames), arg0, arg1)
}

// GetTask mocks base method.
func (m *MockInterface) GetTask(arg0 context.Context, arg1 string) (*client.Task, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTask", arg0, arg1)
	ret0, _ := ret[0].(*client.Task)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTask indicates an expected call of GetTask.
func (mr *MockInterfaceMockRecorder) GetTask(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTask", reflect.TypeOf((*MockInterface)(nil).GetTask), arg0, arg1)
}

// GetUser mocks base method.
func (m *MockInterface) GetUser(arg0 context.Context, arg1 string) (*client.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUser", arg0, arg1)
	ret0, _ := ret[0].(*client.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUser indicates an expected call of GetUser.
func (mr *MockInterfaceMockRecorder) GetUser(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUser", reflect.TypeOf((*MockInterface)(nil).GetUser), arg0, arg1)
}

// GetUserByName mocks base method.
func (m *MockInterface) GetUserByName(arg0 context.Context, arg1 string) (*client.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByName", arg0, arg1)
	ret0, _ := ret[0].(*client.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByName indicates an expected call of GetUserByName.
func (mr *MockInterfaceMockRecorder) GetUserByName(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByName", reflect.TypeOf((*MockInterface)(nil).GetUserByName), arg0, arg1)
}

// GetUserToken mocks base method.
func (m *MockInterface) GetUserToken(arg0 context.Context, arg1 string, arg2 string) (*client.UserToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserToken", arg0, arg1, arg2)
	ret0, _ := ret[0].(*client.UserToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserToken indicates an expected call of GetUserToken.
func (mr *MockInterfaceMockRecorder) GetUserToken(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserToken", reflect.TypeOf((*MockInterface)(nil).GetUserToken), arg0, arg1, arg2)
}

// GetUsersByIds mocks base method.
func (m *MockInterface) GetUsersByIds(arg0 context.Context, arg1 []string) ([]*client.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUsersByIds", arg0, arg1)
	ret0, _ := ret[0].([]*client.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUsersByIds indicates an expected call of GetUsersByIds.
func (mr *MockInterfaceMockRecorder) GetUsersByIds(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUsersByIds", reflect.TypeOf((*MockInterface)(nil).GetUsersByIds), arg0, arg1)
}

// InsertAuditLog mocks base method.
func (m *MockInterface) InsertAuditLog(arg0 context.Context, arg1 *client.AuditLog) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertAuditLog", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertAuditLog indicates an expected call of InsertAuditLog.
func (mr *MockInterfaceMockRecorder) InsertAuditLog(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertAuditLog", reflect.TypeOf((*MockInterface)(nil).InsertAuditLog), arg0, arg1)
}

// InsertCollection mocks base method.
func (m *MockInterface) InsertCollection(arg0 context.Context, arg1 *client.Collection) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertCollection", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertCollection indicates an expected call of InsertCollection.
func (mr *MockInterfaceMockRecorder) InsertCollection(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertCollection", reflect.TypeOf((*MockInterface)(nil).InsertCollection), arg0, arg1)
}

// InsertImage mocks base method.
func (m *MockInterface) InsertImage(arg0 context.Context, arg1 *client.Image) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertImage", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertImage indicates an expected call of InsertImage.
func (mr *MockInterfaceMockRecorder) InsertImage(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertImage", reflect.TypeOf((*MockInterface)(nil).InsertImage), arg0, arg1)
}

// InsertImageTags mocks base method.
func (m *MockInterface) InsertImageTags(arg0 context.Context, arg1 []*client.ImageTag) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertImageTags", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertImageTags indicates an expected call of InsertImageTags.
func (mr *MockInterfaceMockRecorder) InsertImageTags(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertImageTags", reflect.TypeOf((*MockInterface)(nil).InsertImageTags), arg0, arg1)
}

// InsertStorageEndpoint mocks base method.
func (m *MockInterface) InsertStorageEndpoint(arg0 context.Context, arg1 *client.StorageEndpoint) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertStorageEndpoint", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InsertStorageEndpoint indicates an expected call of InsertStorageEndpoint.
func (mr *MockInterfaceMockRecorder) InsertStorageEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertStorageEndpoint", reflect.TypeOf((*MockInterface)(nil).InsertStorageEndpoint), arg0, arg1)
}

// InsertTask mocks base method.
func (m *MockInterface) InsertTask(arg0 context.Context, arg1 *client.Task) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertTask", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertTask indicates an expected call of InsertTask.
func (mr *MockInterfaceMockRecorder) InsertTask(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertTask", reflect.TypeOf((*MockInterface)(nil).InsertTask), arg0, arg1)
}

// InsertUser mocks base method.
func (m *MockInterface) InsertUser(arg0 context.Context, arg1 *client.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertUser", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertUser indicates an expected call of InsertUser.
func (mr *MockInterfaceMockRecorder) InsertUser(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertUser", reflect.TypeOf((*MockInterface)(nil).InsertUser), arg0, arg1)
}

// IterLocationsByEndpoint mocks base method.
func (m *MockInterface) IterLocationsByEndpoint(arg0 context.Context, arg1 int64, arg2 int, arg3 func([]*client.ImageLocation) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IterLocationsByEndpoint", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(error)
	return ret0
}

// IterLocationsByEndpoint indicates an expected call of IterLocationsByEndpoint.
func (mr *MockInterfaceMockRecorder) IterLocationsByEndpoint(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IterLocationsByEndpoint", reflect.TypeOf((*MockInterface)(nil).IterLocationsByEndpoint), arg0, arg1, arg2, arg3)
}

// ListConfigValues mocks base method.
func (m *MockInterface) ListConfigValues(arg0 context.Context) (map[string]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListConfigValues", arg0)
	ret0, _ := ret[0].(map[string]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListConfigValues indicates an expected call of ListConfigValues.
func (mr *MockInterfaceMockRecorder) ListConfigValues(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListConfigValues", reflect.TypeOf((*MockInterface)(nil).ListConfigValues), arg0)
}

// ListPendingLocations mocks base method.
func (m *MockInterface) ListPendingLocations(arg0 context.Context, arg1 int64, arg2 int) ([]*client.ImageLocation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListPendingLocations", arg0, arg1, arg2)
	ret0, _ := ret[0].([]*client.ImageLocation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListPendingLocations indicates an expected call of ListPendingLocations.
func (mr *MockInterfaceMockRecorder) ListPendingLocations(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListPendingLocations", reflect.TypeOf((*MockInterface)(nil).ListPendingLocations), arg0, arg1, arg2)
}

// ListReadCandidateEndpoints mocks base method.
func (m *MockInterface) ListReadCandidateEndpoints(arg0 context.Context) ([]*client.StorageEndpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListReadCandidateEndpoints", arg0)
	ret0, _ := ret[0].([]*client.StorageEndpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListReadCandidateEndpoints indicates an expected call of ListReadCandidateEndpoints.
func (mr *MockInterfaceMockRecorder) ListReadCandidateEndpoints(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListReadCandidateEndpoints", reflect.TypeOf((*MockInterface)(nil).ListReadCandidateEndpoints), arg0)
}

// ListUnprocessedNotifications mocks base method.
func (m *MockInterface) ListUnprocessedNotifications(arg0 context.Context) ([]*model.Notification, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListUnprocessedNotifications", arg0)
	ret0, _ := ret[0].([]*model.Notification)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListUnprocessedNotifications indicates an expected call of ListUnprocessedNotifications.
func (mr *MockInterfaceMockRecorder) ListUnprocessedNotifications(arg0 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListUnprocessedNotifications", reflect.TypeOf((*MockInterface)(nil).ListUnprocessedNotifications), arg0)
}

// RecountTagUsage mocks base method.
func (m *MockInterface) RecountTagUsage(arg0 context.Context, arg1 []int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecountTagUsage", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecountTagUsage indicates an expected call of RecountTagUsage.
func (mr *MockInterfaceMockRecorder) RecountTagUsage(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecountTagUsage", reflect.TypeOf((*MockInterface)(nil).RecountTagUsage), arg0, arg1)
}

// RemoveImageFromCollection mocks base method.
func (m *MockInterface) RemoveImageFromCollection(arg0 context.Context, arg1 int64, arg2 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveImageFromCollection", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveImageFromCollection indicates an expected call of RemoveImageFromCollection.
func (mr *MockInterfaceMockRecorder) RemoveImageFromCollection(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveImageFromCollection", reflect.TypeOf((*MockInterface)(nil).RemoveImageFromCollection), arg0, arg1, arg2)
}

// ReplaceImageAITags mocks base method.
func (m *MockInterface) ReplaceImageAITags(arg0 context.Context, arg1 int64, arg2 []int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReplaceImageAITags", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// ReplaceImageAITags indicates an expected call of ReplaceImageAITags.
func (mr *MockInterfaceMockRecorder) ReplaceImageAITags(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReplaceImageAITags", reflect.TypeOf((*MockInterface)(nil).ReplaceImageAITags), arg0, arg1, arg2)
}

// ResetStuckTasks mocks base method.
func (m *MockInterface) ResetStuckTasks(arg0 context.Context, arg1 []string, arg2 time.Duration) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetStuckTasks", arg0, arg1, arg2)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ResetStuckTasks indicates an expected call of ResetStuckTasks.
func (mr *MockInterfaceMockRecorder) ResetStuckTasks(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetStuckTasks", reflect.TypeOf((*MockInterface)(nil).ResetStuckTasks), arg0, arg1, arg2)
}

// ResolveTag mocks base method.
func (m *MockInterface) ResolveTag(arg0 context.Context, arg1 string, arg2 string) (*client.Tag, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveTag", arg0, arg1, arg2)
	ret0, _ := ret[0].(*client.Tag)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ResolveTag indicates an expected call of ResolveTag.
func (mr *MockInterfaceMockRecorder) ResolveTag(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveTag", reflect.TypeOf((*MockInterface)(nil).ResolveTag), arg0, arg1, arg2)
}

// RetryFailedTasks mocks base method.
func (m *MockInterface) RetryFailedTasks(arg0 context.Context, arg1 []string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RetryFailedTasks", arg0, arg1)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RetryFailedTasks indicates an expected call of RetryFailedTasks.
func (mr *MockInterfaceMockRecorder) RetryFailedTasks(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RetryFailedTasks", reflect.TypeOf((*MockInterface)(nil).RetryFailedTasks), arg0, arg1)
}

// SearchScoredImages mocks base method.
func (m *MockInterface) SearchScoredImages(arg0 context.Context, arg1 squirrel.Sqlizer) ([]*client.ScoredImage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SearchScoredImages", arg0, arg1)
	ret0, _ := ret[0].([]*client.ScoredImage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SearchScoredImages indicates an expected call of SearchScoredImages.
func (mr *MockInterfaceMockRecorder) SearchScoredImages(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SearchScoredImages", reflect.TypeOf((*MockInterface)(nil).SearchScoredImages), arg0, arg1)
}

// SelectAuditLogs mocks base method.
func (m *MockInterface) SelectAuditLogs(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.AuditLog, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectAuditLogs", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.AuditLog)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectAuditLogs indicates an expected call of SelectAuditLogs.
func (mr *MockInterfaceMockRecorder) SelectAuditLogs(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectAuditLogs", reflect.TypeOf((*MockInterface)(nil).SelectAuditLogs), arg0, arg1, arg2, arg3, arg4)
}

// SelectCollections mocks base method.
func (m *MockInterface) SelectCollections(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.Collection, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectCollections", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.Collection)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectCollections indicates an expected call of SelectCollections.
func (mr *MockInterfaceMockRecorder) SelectCollections(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectCollections", reflect.TypeOf((*MockInterface)(nil).SelectCollections), arg0, arg1, arg2, arg3, arg4)
}

// SelectImageIdsMissingOnEndpoint mocks base method.
func (m *MockInterface) SelectImageIdsMissingOnEndpoint(arg0 context.Context, arg1 int64, arg2 int64, arg3 int) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectImageIdsMissingOnEndpoint", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectImageIdsMissingOnEndpoint indicates an expected call of SelectImageIdsMissingOnEndpoint.
func (mr *MockInterfaceMockRecorder) SelectImageIdsMissingOnEndpoint(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectImageIdsMissingOnEndpoint", reflect.TypeOf((*MockInterface)(nil).SelectImageIdsMissingOnEndpoint), arg0, arg1, arg2, arg3)
}

// SelectImageLocations mocks base method.
func (m *MockInterface) SelectImageLocations(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 int, arg3 int) ([]*client.ImageLocation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectImageLocations", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].([]*client.ImageLocation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectImageLocations indicates an expected call of SelectImageLocations.
func (mr *MockInterfaceMockRecorder) SelectImageLocations(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectImageLocations", reflect.TypeOf((*MockInterface)(nil).SelectImageLocations), arg0, arg1, arg2, arg3)
}

// SelectImages mocks base method.
func (m *MockInterface) SelectImages(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.Image, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectImages", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.Image)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectImages indicates an expected call of SelectImages.
func (mr *MockInterfaceMockRecorder) SelectImages(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectImages", reflect.TypeOf((*MockInterface)(nil).SelectImages), arg0, arg1, arg2, arg3, arg4)
}

// SelectOrphanImageIds mocks base method.
func (m *MockInterface) SelectOrphanImageIds(arg0 context.Context, arg1 int64) ([]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectOrphanImageIds", arg0, arg1)
	ret0, _ := ret[0].([]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectOrphanImageIds indicates an expected call of SelectOrphanImageIds.
func (mr *MockInterfaceMockRecorder) SelectOrphanImageIds(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectOrphanImageIds", reflect.TypeOf((*MockInterface)(nil).SelectOrphanImageIds), arg0, arg1)
}

// SelectStorageEndpoints mocks base method.
func (m *MockInterface) SelectStorageEndpoints(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.StorageEndpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectStorageEndpoints", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.StorageEndpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectStorageEndpoints indicates an expected call of SelectStorageEndpoints.
func (mr *MockInterfaceMockRecorder) SelectStorageEndpoints(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectStorageEndpoints", reflect.TypeOf((*MockInterface)(nil).SelectStorageEndpoints), arg0, arg1, arg2, arg3, arg4)
}

// SelectTags mocks base method.
func (m *MockInterface) SelectTags(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.Tag, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectTags", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.Tag)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectTags indicates an expected call of SelectTags.
func (mr *MockInterfaceMockRecorder) SelectTags(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectTags", reflect.TypeOf((*MockInterface)(nil).SelectTags), arg0, arg1, arg2, arg3, arg4)
}

// SelectTasks mocks base method.
func (m *MockInterface) SelectTasks(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.Task, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectTasks", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.Task)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectTasks indicates an expected call of SelectTasks.
func (mr *MockInterfaceMockRecorder) SelectTasks(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectTasks", reflect.TypeOf((*MockInterface)(nil).SelectTasks), arg0, arg1, arg2, arg3, arg4)
}

// SelectUsers mocks base method.
func (m *MockInterface) SelectUsers(arg0 context.Context, arg1 squirrel.Sqlizer, arg2 []string, arg3 int, arg4 int) ([]*client.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectUsers", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].([]*client.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectUsers indicates an expected call of SelectUsers.
func (mr *MockInterfaceMockRecorder) SelectUsers(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectUsers", reflect.TypeOf((*MockInterface)(nil).SelectUsers), arg0, arg1, arg2, arg3, arg4)
}

// SetConfigValue mocks base method.
func (m *MockInterface) SetConfigValue(arg0 context.Context, arg1 string, arg2 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetConfigValue", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetConfigValue indicates an expected call of SetConfigValue.
func (mr *MockInterfaceMockRecorder) SetConfigValue(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetConfigValue", reflect.TypeOf((*MockInterface)(nil).SetConfigValue), arg0, arg1, arg2)
}

// SetDefaultUploadEndpoint mocks base method.
func (m *MockInterface) SetDefaultUploadEndpoint(arg0 context.Context, arg1 int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetDefaultUploadEndpoint", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetDefaultUploadEndpoint indicates an expected call of SetDefaultUploadEndpoint.
func (mr *MockInterfaceMockRecorder) SetDefaultUploadEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetDefaultUploadEndpoint", reflect.TypeOf((*MockInterface)(nil).SetDefaultUploadEndpoint), arg0, arg1)
}

// SetImageTagsByIds mocks base method.
func (m *MockInterface) SetImageTagsByIds(arg0 context.Context, arg1 int64, arg2 []int64, arg3 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetImageTagsByIds", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetImageTagsByIds indicates an expected call of SetImageTagsByIds.
func (mr *MockInterfaceMockRecorder) SetImageTagsByIds(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetImageTagsByIds", reflect.TypeOf((*MockInterface)(nil).SetImageTagsByIds), arg0, arg1, arg2, arg3)
}

// SubmitNotification mocks base method.
func (m *MockInterface) SubmitNotification(arg0 context.Context, arg1 *model.Notification) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitNotification", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SubmitNotification indicates an expected call of SubmitNotification.
func (mr *MockInterfaceMockRecorder) SubmitNotification(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitNotification", reflect.TypeOf((*MockInterface)(nil).SubmitNotification), arg0, arg1)
}

// UpdateEndpointHealth mocks base method.
func (m *MockInterface) UpdateEndpointHealth(arg0 context.Context, arg1 int64, arg2 bool, arg3 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateEndpointHealth", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateEndpointHealth indicates an expected call of UpdateEndpointHealth.
func (mr *MockInterfaceMockRecorder) UpdateEndpointHealth(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateEndpointHealth", reflect.TypeOf((*MockInterface)(nil).UpdateEndpointHealth), arg0, arg1, arg2, arg3)
}

// UpdateImage mocks base method.
func (m *MockInterface) UpdateImage(arg0 context.Context, arg1 *client.Image) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateImage", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateImage indicates an expected call of UpdateImage.
func (mr *MockInterfaceMockRecorder) UpdateImage(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateImage", reflect.TypeOf((*MockInterface)(nil).UpdateImage), arg0, arg1)
}

// UpdateImageDescription mocks base method.
func (m *MockInterface) UpdateImageDescription(arg0 context.Context, arg1 int64, arg2 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateImageDescription", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateImageDescription indicates an expected call of UpdateImageDescription.
func (mr *MockInterfaceMockRecorder) UpdateImageDescription(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateImageDescription", reflect.TypeOf((*MockInterface)(nil).UpdateImageDescription), arg0, arg1, arg2)
}

// UpdateImageEmbedding mocks base method.
func (m *MockInterface) UpdateImageEmbedding(arg0 context.Context, arg1 int64, arg2 pgvector.Vector) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateImageEmbedding", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateImageEmbedding indicates an expected call of UpdateImageEmbedding.
func (mr *MockInterfaceMockRecorder) UpdateImageEmbedding(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateImageEmbedding", reflect.TypeOf((*MockInterface)(nil).UpdateImageEmbedding), arg0, arg1, arg2)
}

// UpdateLocationSyncStatus mocks base method.
func (m *MockInterface) UpdateLocationSyncStatus(arg0 context.Context, arg1 int64, arg2 int64, arg3 string, arg4 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateLocationSyncStatus", arg0, arg1, arg2, arg3, arg4)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateLocationSyncStatus indicates an expected call of UpdateLocationSyncStatus.
func (mr *MockInterfaceMockRecorder) UpdateLocationSyncStatus(arg0, arg1, arg2, arg3, arg4 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateLocationSyncStatus", reflect.TypeOf((*MockInterface)(nil).UpdateLocationSyncStatus), arg0, arg1, arg2, arg3, arg4)
}

// UpdateNotification mocks base method.
func (m *MockInterface) UpdateNotification(arg0 context.Context, arg1 *model.Notification) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateNotification", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateNotification indicates an expected call of UpdateNotification.
func (mr *MockInterfaceMockRecorder) UpdateNotification(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateNotification", reflect.TypeOf((*MockInterface)(nil).UpdateNotification), arg0, arg1)
}

// UpdateStorageEndpoint mocks base method.
func (m *MockInterface) UpdateStorageEndpoint(arg0 context.Context, arg1 *client.StorageEndpoint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStorageEndpoint", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateStorageEndpoint indicates an expected call of UpdateStorageEndpoint.
func (mr *MockInterfaceMockRecorder) UpdateStorageEndpoint(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStorageEndpoint", reflect.TypeOf((*MockInterface)(nil).UpdateStorageEndpoint), arg0, arg1)
}

// UpdateTaskProgress mocks base method.
func (m *MockInterface) UpdateTaskProgress(arg0 context.Context, arg1 string, arg2 types.JSONText) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateTaskProgress", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateTaskProgress indicates an expected call of UpdateTaskProgress.
func (mr *MockInterfaceMockRecorder) UpdateTaskProgress(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateTaskProgress", reflect.TypeOf((*MockInterface)(nil).UpdateTaskProgress), arg0, arg1, arg2)
}

// UpsertImageLocation mocks base method.
func (m *MockInterface) UpsertImageLocation(arg0 context.Context, arg1 *client.ImageLocation) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertImageLocation", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertImageLocation indicates an expected call of UpsertImageLocation.
func (mr *MockInterfaceMockRecorder) UpsertImageLocation(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertImageLocation", reflect.TypeOf((*MockInterface)(nil).UpsertImageLocation), arg0, arg1)
}

// UpsertUserToken mocks base method.
func (m *MockInterface) UpsertUserToken(arg0 context.Context, arg1 *client.UserToken) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertUserToken", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertUserToken indicates an expected call of UpsertUserToken.
func (mr *MockInterfaceMockRecorder) UpsertUserToken(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertUserToken", reflect.TypeOf((*MockInterface)(nil).UpsertUserToken), arg0, arg1)
}
