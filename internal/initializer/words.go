package initializer

import (
	"wordgame-service/config"
	"wordgame-service/infra/words"
)

func InitWords(appConfig config.Config) *words.Pool {
	return words.Load(appConfig.Game.WordFile)
}
