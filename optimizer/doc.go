// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package optimizer 根据模型、分辨率、风格与质量模式推导生成步数与 guidance。

Optimize 是纯函数：对任意模型 ID（包括未知模型）都返回结果，输出步数
始终落在该模型声明的 [Min, Max] 区间内。用户显式给出的步数同样会被夹紧。

另外提供两个推荐辅助函数：AnalyzePromptComplexity 估算提示词复杂度，
RecommendQualityMode 据此为模型推荐质量模式。
*/
package optimizer
