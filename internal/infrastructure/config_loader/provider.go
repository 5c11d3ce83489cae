package loader

import "github.com/google/wire"

// ProviderSet exposes configuration-derived dependencies for Wire graphs.
var ProviderSet = wire.NewSet(
	ProvideServiceMetadata,
	ProvideBootstrap,
	ProvideServerConfig,
	ProvideDataConfig,
	ProvideStorageConfig,
	ProvideReconcileConfig,
)

// ProvideServiceMetadata returns the resolved ServiceMetadata from the loader.
func ProvideServiceMetadata(l *Loader) ServiceMetadata {
	if l == nil {
		return ServiceMetadata{}
	}
	return l.Service
}

// ProvideBootstrap exposes the strongly typed bootstrap configuration.
func ProvideBootstrap(l *Loader) *Bootstrap {
	if l == nil {
		return nil
	}
	return l.Bootstrap
}

// ProvideServerConfig returns the server section of the bootstrap configuration.
func ProvideServerConfig(bc *Bootstrap) *ServerConfig {
	if bc == nil {
		return nil
	}
	return bc.Server
}

// ProvideDataConfig returns the data section of the bootstrap configuration.
func ProvideDataConfig(bc *Bootstrap) *DataConfig {
	if bc == nil {
		return nil
	}
	return bc.Data
}

// ProvideStorageConfig returns the storage section of the bootstrap configuration.
func ProvideStorageConfig(bc *Bootstrap) *StorageConfig {
	if bc == nil {
		return nil
	}
	return bc.Storage
}

// ProvideReconcileConfig returns the reconcile section of the bootstrap configuration.
func ProvideReconcileConfig(bc *Bootstrap) *ReconcileConfig {
	if bc == nil {
		return nil
	}
	return bc.Reconcile
}
