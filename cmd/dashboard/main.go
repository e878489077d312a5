package main

import "store_admin_dashboard/cmd/dashboard/commands"

// @title Store Admin Dashboard API
// @version 1.0
// @description 多店铺电商后台：店铺、广告牌、分类、尺码、颜色、商品与图片上传
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	commands.Execute()
}
