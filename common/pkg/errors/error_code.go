/*
 * Copyright (c) 2025, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	"fmt"
	"net/http"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
)

const IrisPrefix = "Iris."

/*
   5-digit Error Code Convention: [xx][yyy]
   [xx] Business ID (00–99), used to distinguish errors from different business interfaces.
   00: General errors
   01: Image-related errors
   02: Storage-related errors
   03: Task-related errors
   04: Tag-related errors
   [yyy] Error code range (000–999)
*/

// public: 00xxx
const (
	InternalError         = IrisPrefix + "00001"
	BadRequest            = IrisPrefix + "00002"
	Forbidden             = IrisPrefix + "00003"
	AlreadyExist          = IrisPrefix + "00004"
	NotFound              = IrisPrefix + "00005"
	RequestEntityTooLarge = IrisPrefix + "00006"
	NotImplemented        = IrisPrefix + "00007"
	Conflict              = IrisPrefix + "00008"
	Unauthorized          = IrisPrefix + "00009"
	ResourceProcessing    = IrisPrefix + "00010"
	UserNotRegistered     = IrisPrefix + "00011"
	Timeout               = IrisPrefix + "00012"
	UpstreamUnavailable   = IrisPrefix + "00013"
	IntegrityViolated     = IrisPrefix + "00014"
)

// image: 01xxx
const (
	ImageNotFound          = IrisPrefix + "01001"
	ImageFormatUnsupported = IrisPrefix + "01002"
	ImageUnavailable       = IrisPrefix + "01003"
)

// storage: 02xxx
const (
	EndpointNotFound  = IrisPrefix + "02001"
	EndpointBusy      = IrisPrefix + "02002"
	EndpointUnhealthy = IrisPrefix + "02003"
	ObjectMissing     = IrisPrefix + "02004"
)

// task: 03xxx
const (
	TaskNotFound = IrisPrefix + "03001"
)

// tag: 04xxx
const (
	TagNotFound = IrisPrefix + "04001"
)

// IsIris returns true if the specified error carries an Iris error reason.
func IsIris(err error) bool {
	if err == nil {
		return false
	}
	return strings.HasPrefix(string(apierrors.ReasonForError(err)), IrisPrefix)
}

func IsAlreadyExist(err error) bool {
	return apierrors.ReasonForError(err) == AlreadyExist
}

func IsBadRequest(err error) bool {
	return apierrors.ReasonForError(err) == BadRequest
}

func IsInternal(err error) bool {
	return apierrors.ReasonForError(err) == InternalError
}

func IsForbidden(err error) bool {
	return apierrors.ReasonForError(err) == Forbidden
}

func IsUnauthorized(err error) bool {
	reason := apierrors.ReasonForError(err)
	return reason == Unauthorized || reason == UserNotRegistered
}

func IsConflict(err error) bool {
	reason := apierrors.ReasonForError(err)
	return reason == Conflict || reason == EndpointBusy || reason == IntegrityViolated
}

func IsTimeout(err error) bool {
	return apierrors.ReasonForError(err) == Timeout
}

func IsEndpointBusy(err error) bool {
	return apierrors.ReasonForError(err) == EndpointBusy
}

func IsUpstreamUnavailable(err error) bool {
	return apierrors.ReasonForError(err) == UpstreamUnavailable
}

func IsObjectMissing(err error) bool {
	return apierrors.ReasonForError(err) == ObjectMissing
}

func IsImageFormatUnsupported(err error) bool {
	return apierrors.ReasonForError(err) == ImageFormatUnsupported
}

func IsNotFound(err error) bool {
	reason := apierrors.ReasonForError(err)
	if reason == NotFound || reason == ImageNotFound || reason == EndpointNotFound ||
		reason == TaskNotFound || reason == TagNotFound || reason == ObjectMissing {
		return true
	}
	return false
}

func IgnoreFound(err error) error {
	if err == nil || IsNotFound(err) {
		return nil
	}
	return err
}

func GetErrorCode(err error) string {
	if err == nil || !IsIris(err) {
		return ""
	}
	return string(apierrors.ReasonForError(err))
}

func NewBadRequest(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusBadRequest,
		Reason:  BadRequest,
		Message: fmt.Sprintf("Bad request. %s", message),
	}}
}

func NewInternalError(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusInternalServerError,
		Reason:  InternalError,
		Message: fmt.Sprintf("Internal error. %s", message),
	}}
}

func NewAlreadyExist(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  AlreadyExist,
		Message: message,
	}}
}

func NewConflict(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  Conflict,
		Message: message,
	}}
}

func NewIntegrityViolated(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  IntegrityViolated,
		Message: message,
	}}
}

func NewForbidden(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusForbidden,
		Reason:  Forbidden,
		Message: message,
	}}
}

func NewTimeout(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusGatewayTimeout,
		Reason:  Timeout,
		Message: message,
	}}
}

func NewUpstreamUnavailable(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusServiceUnavailable,
		Reason:  UpstreamUnavailable,
		Message: message,
	}}
}

func NewEndpointBusy(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  EndpointBusy,
		Message: message,
	}}
}

func NewEndpointUnhealthy(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusServiceUnavailable,
		Reason:  EndpointUnhealthy,
		Message: message,
	}}
}

func NewObjectMissing(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusNotFound,
		Reason:  ObjectMissing,
		Message: message,
	}}
}

func NewImageFormatUnsupported(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusBadRequest,
		Reason:  ImageFormatUnsupported,
		Message: message,
	}}
}

func NewImageUnavailable(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusServiceUnavailable,
		Reason:  ImageUnavailable,
		Message: message,
	}}
}

func NotFoundErrorCode(kind string) metav1.StatusReason {
	switch kind {
	case common.ImageKind:
		return ImageNotFound
	case common.StorageEndpointKind:
		return EndpointNotFound
	case common.TaskKind:
		return TaskNotFound
	case common.TagKind:
		return TagNotFound
	default:
		return NotFound
	}
}

func NewNotFound(kind, name string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status: metav1.StatusFailure,
		Code:   http.StatusNotFound,
		Reason: NotFoundErrorCode(kind),
		Details: &metav1.StatusDetails{
			Kind: kind,
			Name: name,
		},
		Message: fmt.Sprintf("%s %s not found.", kind, name),
	}}
}

func NewNotFoundWithMessage(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusNotFound,
		Reason:  NotFound,
		Message: message,
	}}
}

func NewRequestEntityTooLargeError(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusRequestEntityTooLarge,
		Reason:  RequestEntityTooLarge,
		Message: fmt.Sprintf("Request entity is too large: %s", message),
	}}
}

func NewUnauthorized(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusUnauthorized,
		Reason:  Unauthorized,
		Message: message,
	}}
}

func NewUserNotRegistered(userId string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusUnauthorized,
		Reason:  UserNotRegistered,
		Message: fmt.Sprintf("the user(%s) is not registered", userId),
	}}
}

func NewResourceProcessing(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  ResourceProcessing,
		Message: message,
	}}
}

func NewNotImplemented(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusNotImplemented,
		Reason:  NotImplemented,
		Message: message,
	}}
}
