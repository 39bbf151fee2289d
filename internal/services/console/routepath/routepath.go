// Package routepath centralizes the console's route constants and builders
// so handlers, route modules and templates agree on one canonical form.
package routepath

import (
	"net/url"
	"strconv"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	Login  = "/login"
	Logout = "/logout"
	Reload = "/reload"
)

const (
	Users       = "/users"
	UsersTable  = "/users/table"
	UsersPrefix = "/users/"
)

const (
	Submissions              = "/submissions"
	SubmissionsTable         = "/submissions/table"
	SubmissionsSelect        = "/submissions/select"
	SubmissionsSelectSection = "/submissions/select-section"
	SubmissionsBulk          = "/submissions/bulk"
	SubmissionsPrefix        = "/submissions/"
)

const (
	Apps      = "/apps"
	AppsTable = "/apps/table"
)

const (
	Payments = "/payments"
)

func User(userID int64) string {
	return Users + "/" + formatID(userID)
}

func UserRole(userID int64) string {
	return User(userID) + "/role"
}

func UserDelete(userID int64) string {
	return User(userID) + "/delete"
}

func UserResetPassword(userID int64) string {
	return User(userID) + "/reset-password"
}

func Submission(submissionID int64) string {
	return Submissions + "/" + formatID(submissionID)
}

func SubmissionApprove(submissionID int64) string {
	return Submission(submissionID) + "/approve"
}

func SubmissionReject(submissionID int64) string {
	return Submission(submissionID) + "/reject"
}

func SubmissionManifest(submissionID int64) string {
	return Submission(submissionID) + "/manifest"
}

func SubmissionFiles(submissionID int64) string {
	return Submission(submissionID) + "/files"
}

func SubmissionFilesZip(submissionID int64) string {
	return SubmissionFiles(submissionID) + "/zip"
}

func SubmissionFileDownload(submissionID int64, path string) string {
	return SubmissionFiles(submissionID) + "/download?path=" + url.QueryEscape(path)
}

func SubmissionFileVerify(submissionID int64, path string) string {
	return SubmissionFiles(submissionID) + "/verify?path=" + url.QueryEscape(path)
}

func SubmissionFilesVerifyBatch(submissionID int64) string {
	return SubmissionFiles(submissionID) + "/verify-batch"
}

func SubmissionFilesProgressWS(submissionID int64) string {
	return SubmissionFiles(submissionID) + "/progress/ws"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
