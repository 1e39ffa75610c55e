// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/filevault/filevault/internal/app"
	"github.com/filevault/filevault/internal/service"
	"github.com/filevault/filevault/internal/store"
)

type errorResponse struct {
	message string
	status  int
}

var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:      {message: app.MsgInvalidDataProvided, status: http.StatusBadRequest},
	service.ErrWrongPassword:            {message: app.MsgInvalidLoginPassword, status: http.StatusUnauthorized},
	service.ErrTokenCreationFailed:      {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	service.ErrTokenIsExpiredOrInvalid:  {message: app.MsgTokenIsExpiredOrInvalid, status: http.StatusUnauthorized},
	service.ErrUnauthorized:             {message: app.MsgAccessDenied, status: http.StatusForbidden},
	service.ErrRegistrationDisabled:     {message: app.MsgRegistrationDisabled, status: http.StatusForbidden},
	service.ErrInvitationInvalid:        {message: app.MsgInvitationInvalid, status: http.StatusBadRequest},
	service.ErrQuotaExceeded:            {message: app.MsgQuotaExceeded, status: http.StatusInsufficientStorage},
	service.ErrInsufficientStorage:      {message: app.MsgInsufficientStorage, status: http.StatusInsufficientStorage},
	service.ErrNotAFolder:               {message: app.MsgNotAFolder, status: http.StatusBadRequest},
	service.ErrCannotMoveIntoSelf:       {message: app.MsgCannotMoveIntoSelf, status: http.StatusBadRequest},
	service.ErrShareExpired:             {message: app.MsgShareExpired, status: http.StatusGone},
	service.ErrSharePasswordRequired:    {message: app.MsgSharePasswordRequired, status: http.StatusUnauthorized},
	service.ErrShareWrongPassword:       {message: app.MsgShareWrongPassword, status: http.StatusUnauthorized},
	service.ErrVersionIsNotSpecified:    {message: app.MsgVersionIsNotSpecified, status: http.StatusInternalServerError},
	service.ErrResetTokenInvalid:        {message: app.MsgResetTokenInvalid, status: http.StatusBadRequest},
	service.ErrAlreadyUploaded:          {message: app.MsgAlreadyUploaded, status: http.StatusConflict},
	service.ErrQuotaBelowUsage:          {message: app.MsgQuotaBelowUsage, status: http.StatusBadRequest},
	service.ErrQuotaExceedsFreeSpace:    {message: app.MsgQuotaExceedsFreeSpace, status: http.StatusBadRequest},
	service.ErrRoleCannotInviteAbove:    {message: app.MsgRoleCannotInviteAbove, status: http.StatusForbidden},
	service.ErrShareNotPublic:           {message: app.MsgShareNotPublic, status: http.StatusBadRequest},

	store.ErrEmailAlreadyExists:        {message: app.MsgEmailAlreadyExists, status: http.StatusConflict},
	store.ErrUserNotFound:              {message: app.MsgUserNotFound, status: http.StatusNotFound},
	store.ErrFileNotFound:              {message: app.MsgFileNotFound, status: http.StatusNotFound},
	store.ErrFileNameConflict:          {message: app.MsgFileNameConflict, status: http.StatusConflict},
	store.ErrFolderNotEmpty:            {message: app.MsgFolderNotEmpty, status: http.StatusConflict},
	store.ErrShareNotFound:             {message: app.MsgShareNotFound, status: http.StatusNotFound},
	store.ErrShareTokenConflict:        {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	store.ErrInvitationNotFound:        {message: app.MsgInvitationInvalid, status: http.StatusBadRequest},
	store.ErrInvitationAlreadyRedeemed: {message: app.MsgInvitationInvalid, status: http.StatusBadRequest},
	store.ErrSettingNotFound:           {message: app.MsgSettingNotFound, status: http.StatusNotFound},

	store.ErrBuildingSQLQuery:     {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	store.ErrExecutingQuery:       {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	store.ErrBeginningTransaction: {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	store.ErrCommitingTransaction: {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	store.ErrScanningRow:          {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
	store.ErrScanningRows:         {message: app.MsgInternalServerError, status: http.StatusInternalServerError},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{message: app.MsgInternalServerError, status: http.StatusInternalServerError}
}
