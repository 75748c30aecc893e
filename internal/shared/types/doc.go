// Package types provides shared data structures for the GridBoard backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Project: Named collection of windows
//   - Window: Positioned, resizable content tile
//   - ContentType: Classified content kind enum
//   - LayoutItem: Position/size feedback from the layout engine
//   - Profile: Persisted user profile with projects
//
// Wire Compatibility:
// Window and Project marshal to the exact JSON shapes the persistence
// store and frontend exchange ({i, x, y, w, h, content, bgColor,
// contentType} and {id, name, windows}).
package types
