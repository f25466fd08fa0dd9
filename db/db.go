package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// CredentialsEnv holds the base64 encoded service account JSON.
const CredentialsEnv = "FIREBASE_CREDENTIALS"

// FirestoreClient is a singleton Firestore client instance.
var (
	client     *firestore.Client
	clientErr  error
	clientOnce sync.Once
)

// InitFirestore initializes and returns a Firestore client. The first call
// decides the outcome; later calls return the same client or error.
func InitFirestore(ctx context.Context) (*firestore.Client, error) {
	clientOnce.Do(func() {
		encodedCreds := os.Getenv(CredentialsEnv)
		if encodedCreds == "" {
			clientErr = fmt.Errorf("%s is not set", CredentialsEnv)
			return
		}
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			clientErr = fmt.Errorf("decode firestore credentials: %w", err)
			return
		}

		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
		if err != nil {
			clientErr = fmt.Errorf("initialize firebase app: %w", err)
			return
		}

		client, err = app.Firestore(ctx)
		if err != nil {
			clientErr = fmt.Errorf("get firestore client: %w", err)
			return
		}
		logrus.Info("Firestore client ready")
	})

	return client, clientErr
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("Closing Firestore client")
		}
	}
}
