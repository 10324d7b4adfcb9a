// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides pure-Go Vulkan 1.0-1.3 bindings used by the rest of
// this module. There is no cgo: function pointers are resolved at runtime
// from the platform Vulkan loader (vulkan-1.dll / libvulkan.so.1 /
// libvulkan.dylib via MoltenVK) through goffi, and calls are dispatched
// through goffi's C-calling-convention trampoline.
//
// # Calling convention
//
// goffi expects every entry in the args slice passed to CallFunction to be
// a pointer to where the argument value is stored, never the value itself
// -- including for arguments that are themselves pointers (in that case
// the slice entry is a pointer to a local variable holding the pointer).
// See call.go for the shared helpers that encode this rule once.
//
// # Loading stages
//
//  1. Init loads the shared library and resolves vkGetInstanceProcAddr.
//  2. Commands.LoadGlobal resolves the handful of functions callable
//     before any VkInstance exists (vkCreateInstance, version and layer
//     enumeration).
//  3. Commands.LoadInstance resolves instance-level functions once
//     vkCreateInstance succeeds, including all WSI surface queries.
//  4. Commands.LoadDevice resolves device-level functions once
//     vkCreateDevice succeeds.
//
// Only the subset of the Vulkan 1.0-1.3 surface that the rest of this
// module exercises is bound; it is not a complete generated binding.
package vk
