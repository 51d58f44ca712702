package config

type WorkerKeyStruct struct {
	OrphanAssetQueue string
}

var WorkerKey = &WorkerKeyStruct{
	OrphanAssetQueue: "orphan_asset_queue",
}
