// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the product-search
// assistant service.
//
// The service is an opaque collaborator reached over one endpoint:
// POST {base}/chat with a JSON body {query, history}, answered by
// {response, history}. Everything the client knows about the service is
// in this package; callers see a typed ClientError taxonomy and never a
// raw transport error.
//
// # Usage
//
//	client := assistant.NewClient()
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	resp, err := client.Chat(ctx, "how much are the air max?", history)
package assistant
