package tile

import mjErrors "sudooom.mahjong.engine/internal/mahjong/errors"

// 麻將牌相關錯誤
var (
	ErrInvalidTile      = mjErrors.New("INVALID_TILE", "無效的麻將牌（花色與數值不匹配）")
	ErrInvalidTileIndex = mjErrors.New("INVALID_TILE_INDEX", "計數向量下標必須在 0-33 之間")
	ErrFlowerInVector   = mjErrors.New("FLOWER_IN_VECTOR", "花牌不能進入計數向量")
)
