// vitals
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.


package httpclient

import (
	"context"
	"net/http"

	"github.com/caas-team/vitals/internal/logger"
)

type client struct{}

// IntoContext embeds the provided http.Client into the given context.
// Checks doing http requests take their client from the context, so tests and callers can swap the transport.
func IntoContext(ctx context.Context, c *http.Client) context.Context {
	return context.WithValue(ctx, client{}, c)
}

// FromContext extracts the http.Client from the provided context.
// If the context does not have a client it returns http.DefaultClient.
func FromContext(ctx context.Context) *http.Client {
	if ctx == nil {
		return http.DefaultClient
	}
	if c, ok := ctx.Value(client{}).(*http.Client); ok && c != nil {
		return c
	}

	logger.FromContext(ctx).DebugContext(ctx, "No http.Client found in context, using http.DefaultClient")
	return http.DefaultClient
}
