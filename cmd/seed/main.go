// Command seed loads a catalog fixture into MongoDB and, when the inventory
// backend is DynamoDB, mirrors each variant's stock into the ledger table.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Vinayyy19/Furnista/config"
	"github.com/Vinayyy19/Furnista/database"
	"github.com/Vinayyy19/Furnista/models"
	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	"github.com/Vinayyy19/Furnista/repository"
	"go.uber.org/zap"
)

//go:embed fixtures.json
var defaultFixture []byte

type fixture struct {
	Categories []struct {
		Name     string `json:"name"`
		Products []struct {
			models.Product
			Variants []models.Variant `json:"variants"`
		} `json:"products"`
	} `json:"categories"`
}

func main() {
	var file string
	flag.StringVar(&file, "file", "", "catalog fixture (defaults to the bundled one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	data := defaultFixture
	if file != "" {
		if data, err = os.ReadFile(file); err != nil {
			log.Fatalf("read fixture: %v", err)
		}
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoDB, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, zap.NewNop())
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer mongoDB.Close()

	categories := repository.NewCategoryRepository(mongoDB.DB)
	products := repository.NewProductRepository(mongoDB.DB)
	variants := repository.NewVariantRepository(mongoDB.DB)

	var ledger repository.InventoryLedger
	if cfg.InventoryBackend == config.InventoryDynamo {
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			log.Fatalf("aws config: %v", err)
		}
		ledger = repository.NewDynamoInventory(awspkg.NewDynamoDBClient(awsCfg), cfg.DDBTable)
	}

	var nProducts, nVariants int
	for _, c := range fx.Categories {
		category, err := categories.FindByName(ctx, c.Name)
		if errors.Is(err, repository.ErrNotFound) {
			category = &models.Category{Name: c.Name}
			err = categories.Create(ctx, category)
		}
		if err != nil {
			log.Fatalf("category %q: %v", c.Name, err)
		}

		for _, p := range c.Products {
			product := p.Product
			product.CategoryID = category.ID
			if err := products.Create(ctx, &product); err != nil {
				log.Fatalf("product %q: %v", product.Name, err)
			}
			nProducts++

			for _, v := range p.Variants {
				v.ProductID = product.ID
				if err := variants.Create(ctx, &v); err != nil {
					if errors.Is(err, repository.ErrDuplicate) {
						log.Printf("skip duplicate variant %s", v.SKU)
						continue
					}
					log.Fatalf("variant %s: %v", v.SKU, err)
				}
				if ledger != nil {
					if err := ledger.SetStock(ctx, v.ID, v.StockQty); err != nil {
						log.Fatalf("stock %s: %v", v.SKU, err)
					}
				}
				nVariants++
			}
		}
	}

	log.Printf("seeded %d categories, %d products, %d variants", len(fx.Categories), nProducts, nVariants)
}
