// Package plugkit provides flat re-exports of all submodules, so plugin
// code can depend on one import instead of every concern package.
package plugkit

import (
	"github.com/machinefabric/plugkit-go/dispatch"
	"github.com/machinefabric/plugkit-go/host"
	"github.com/machinefabric/plugkit-go/listing"
	"github.com/machinefabric/plugkit-go/manifest"
	"github.com/machinefabric/plugkit-go/params"
	"github.com/machinefabric/plugkit-go/storage"
)

// Parameter codec types and functions
type Params = params.Params

var Decode = params.Decode
var Encode = params.Encode
var IsControlKey = params.IsControlKey

// Listing types and functions
type Item = listing.Item
type Sealed = listing.Sealed
type SortMethod = listing.SortMethod
type PlaylistEntry = listing.PlaylistEntry

var NewItem = listing.NewItem
var NewFolderItem = listing.NewFolderItem
var NewNextPage = listing.NewNextPage

// Dispatch engine types and functions
type Dispatcher = dispatch.Dispatcher
type Registry = dispatch.Registry
type Route = dispatch.Route
type Kind = dispatch.Kind
type Context = dispatch.Context
type Script = dispatch.Script
type Folder = dispatch.Folder
type Resolver = dispatch.Resolver
type ScriptFunc = dispatch.ScriptFunc
type FolderFunc = dispatch.FolderFunc
type ResolverFunc = dispatch.ResolverFunc
type DelayedFunc = dispatch.DelayedFunc
type Invocation = dispatch.Invocation

var New = dispatch.New
var NewRegistry = dispatch.NewRegistry
var ParseInvocation = dispatch.ParseInvocation
var CanonicalPath = dispatch.CanonicalPath
var WithRegistry = dispatch.WithRegistry
var WithSettings = dispatch.WithSettings

// Host collaborator interfaces
type Host = host.Host
type Directory = host.Directory
type Player = host.Player
type Notifier = host.Notifier
type LogSink = host.LogSink
type FakeHost = host.Fake

var NewFakeHost = host.NewFake

// Manifest types and functions
type Manifest = manifest.Manifest

var LoadManifest = manifest.Load
var ParseManifest = manifest.Parse

// Storage types and functions
type Store = storage.Store
type Settings = storage.Settings

var OpenStore = storage.Open
var OpenSettings = storage.OpenSettings

// Response kinds
const (
	KindScript   = dispatch.KindScript
	KindFolder   = dispatch.KindFolder
	KindResolver = dispatch.KindResolver
)

// Sort methods (host numeric table)
const (
	SortUnsorted = listing.SortUnsorted
	SortLabel    = listing.SortLabel
	SortDate     = listing.SortDate
	SortDuration = listing.SortDuration
	SortTitle    = listing.SortTitle
	SortYear     = listing.SortYear
	SortEpisode  = listing.SortEpisode
)
