package main

import (
	"log"
	"time"

	"agrimarket/internal/config"
	"agrimarket/internal/domain/model"
	"agrimarket/internal/handler"
	"agrimarket/internal/infra/db"
	infraRepo "agrimarket/internal/infra/repository"
	"agrimarket/internal/notify"
	"agrimarket/internal/server"
	"agrimarket/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Market{},
		&model.Product{},
		&model.Price{},
		&model.Order{},
		&model.OrderItem{},
		&model.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	marketRepo := infraRepo.NewMarketGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	priceRepo := infraRepo.NewPriceGormRepository(gormDB)
	txMgr := infraRepo.NewTxManagerGorm(gormDB)

	emitter := notify.NewGormEmitter(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret, 15*time.Minute)
	orderUC := usecase.NewOrderUsecase(txMgr, emitter)
	catalogUC := usecase.NewCatalogUsecase(marketRepo, productRepo, priceRepo)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	orderH := handler.NewOrderHandler(orderUC)
	catalogH := handler.NewCatalogHandler(catalogUC)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := server.Start(addr, cfg, authH, orderH, catalogH); err != nil {
		log.Fatal(err)
	}
}
