package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type identityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// whoami logs the account the credentials resolve to. S3 compatible stores
// usually have no STS, so a failure is only a warning.
func whoami(ctx context.Context, api identityAPI) bool {
	resp, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		slog.Warn("identity", "error", err)
		return false
	}

	slog.Info("identity", "account", aws.ToString(resp.Account), "arn", aws.ToString(resp.Arn))
	return true
}
