// Package console hosts the operator dashboard for the Indie-Hain
// distribution platform: admin sign-in against the platform API, submission
// moderation with bulk actions, user management, catalog and payment
// inspection, and build-file verification.
package console
